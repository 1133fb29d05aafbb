package sonarr

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for series and episodes
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

var _ EpisodeFormatter = (*ConsoleFormatter)(nil)

// FormatSeriesList formats series lookup results
func (f *ConsoleFormatter) FormatSeriesList(series []SeriesDetails) string {
	if len(series) == 0 {
		return "No series found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", plural(len(series), "Series", "Series"), len(series))

	for i, s := range series {
		prefix, indent := branch(i == len(series)-1)
		fmt.Fprintf(&sb, "%s── %s (ID: %d)\n", prefix, s.Series.Title, s.Series.ID)
		if len(s.TagNames) > 0 {
			fmt.Fprintf(&sb, "%sTags: %s\n", indent, strings.Join(s.TagNames, ", "))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatEpisodeList formats a list of episodes for console display
func (f *ConsoleFormatter) FormatEpisodeList(episodes []EpisodeDetails) string {
	if len(episodes) == 0 {
		return "No episodes found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", plural(len(episodes), "Episode", "Episodes"), len(episodes))

	for i, ep := range episodes {
		isLast := i == len(episodes)-1
		prefix, indent := branch(isLast)
		f.formatEpisodeLine(&sb, prefix, ep)
		fmt.Fprintf(&sb, "%s%s\n", indent, episodeStatus(ep.Episode))
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatSweepPlan formats the episodes a sweep is about to change
func (f *ConsoleFormatter) FormatSweepPlan(episodes []EpisodeDetails, opts SweepOptions) string {
	if len(episodes) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s to be swept (%d):\n\n", plural(len(episodes), "Episode", "Episodes"), len(episodes))

	var files int
	for i, ep := range episodes {
		prefix, indent := branch(i == len(episodes)-1)
		f.formatEpisodeLine(&sb, prefix, ep)

		var actions []string
		if opts.Unmonitor && ep.Episode.Monitored {
			actions = append(actions, "unmonitor")
		}
		if opts.DeleteFiles && ep.Episode.HasFile() {
			actions = append(actions, fmt.Sprintf("delete file %d", *ep.Episode.EpisodeFileID))
			files++
		}
		fmt.Fprintf(&sb, "%sActions: %s\n", indent, strings.Join(actions, ", "))
	}

	if files > 0 {
		fmt.Fprintf(&sb, "\n⚠️  %d file(s) will be removed from disk.\n", files)
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatEpisodeLine(sb *strings.Builder, prefix string, ep EpisodeDetails) {
	fmt.Fprintf(sb, "%s── %s %s", prefix, ep.SeriesTitle, ep.Episode.Label())
	if ep.Episode.Title != "" {
		fmt.Fprintf(sb, " - %s", ep.Episode.Title)
	}
	fmt.Fprintf(sb, " (ID: %d)\n", ep.Episode.ID)
}

func episodeStatus(ep EpisodeInfo) string {
	parts := make([]string, 0, 2)
	if ep.Monitored {
		parts = append(parts, "Monitored")
	} else {
		parts = append(parts, "Not Monitored")
	}
	if ep.HasFile() {
		parts = append(parts, fmt.Sprintf("File: %d", *ep.EpisodeFileID))
	} else {
		parts = append(parts, "No File")
	}
	return strings.Join(parts, " | ")
}

// branch returns the tree prefix for an entry and the indent for its details
func branch(isLast bool) (string, string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
