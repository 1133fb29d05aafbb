package cmd

import (
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/sonarr-sweep"

var (
	appVersion = "dev"
	buildTime  = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = version
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sonarr-sweep %s (built %s)\n", appVersion, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update sonarr-sweep to the latest release",
	Long:  `Check GitHub for a newer release of sonarr-sweep and replace the running binary with it.`,
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := parseVersion(appVersion)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	newer, err := isNewer(latest.Version(), current)
	if err != nil {
		return err
	}
	if !newer {
		fmt.Fprintf(out, "sonarr-sweep %s is up to date\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Fprintf(out, "Updating sonarr-sweep %s -> %s...\n", current, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated to %s\n", latest.Version())
	if latest.ReleaseNotes != "" {
		fmt.Fprintf(out, "\nRelease notes:\n%s\n", latest.ReleaseNotes)
	}
	return nil
}

// parseVersion parses the running version. Development builds have none and
// cannot be updated.
func parseVersion(version string) (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, errors.New("development builds cannot be updated; install a release from GitHub")
	}
	return v, nil
}

// isNewer reports whether candidate is a later release than current.
// Pre-releases are only offered to pre-release builds.
func isNewer(candidate string, current semver.Version) (bool, error) {
	v, err := semver.ParseTolerant(candidate)
	if err != nil {
		return false, fmt.Errorf("invalid release version %q: %w", candidate, err)
	}
	if len(v.Pre) > 0 && len(current.Pre) == 0 {
		return false, nil
	}
	return v.GT(current), nil
}
