package engine

// ============================================================================
// DASHBOARD — Assembles render-ready panels from a FilteredView
// ============================================================================
// Panel order matches the page top to bottom. An aggregate flagged NoData
// becomes a "notice" panel carrying the aggregate's message.
// ============================================================================

// Panel keys, stable across releases so frontends can address panels.
const (
	PanelSummary      = "summary"
	PanelFiltered     = "filtered"
	PanelTopMovies    = "top_movies"
	PanelGenreCounts  = "genre_distribution"
	PanelAvgDuration  = "avg_duration"
	PanelAvgVotes     = "avg_votes"
	PanelRatingDist   = "rating_distribution"
	PanelTopPerGenre  = "top_per_genre"
	PanelVotesShare   = "votes_share"
	PanelExtremes     = "duration_extremes"
	PanelRatingHeat   = "rating_heatmap"
	PanelRatingVsVote = "rating_vs_votes"
)

// DashboardTitle is the page heading.
const DashboardTitle = "Movie Data Analysis Dashboard"

// BuildDashboard turns a FilteredView into the full dashboard page.
func BuildDashboard(v *FilteredView) *Dashboard {
	d := &Dashboard{
		Title:      DashboardTitle,
		Criteria:   v.Criteria,
		MatchCount: v.Len(),
	}

	d.Panels = append(d.Panels,
		Panel{
			Key:     PanelSummary,
			Title:   "Summary",
			Type:    "metrics",
			Metrics: BuildSummaryMetrics(v),
		},
		Panel{
			Key:   PanelFiltered,
			Title: "Filtered Movies Based on Your Selection",
			Type:  "table",
			Table: BuildMovieTable("Filtered Movies", v.Movies, FilteredColumns),
		},
	)

	const topTitle = "Top 10 Movies by Rating and Voting Counts"
	d.Panels = append(d.Panels, sectionPanel(PanelTopMovies, topTitle, v.TopByRatingThenVotes, func(m []Movie) Panel {
		return Panel{Type: "table", Table: BuildMovieTable(topTitle, m, TopColumns)}
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelGenreCounts, "Genre Distribution", v.GenreCounts, func(g []GenreStat) Panel {
		return chartPanel(BuildGenreChart("bar", "Genre Distribution", "Genre", "Number of Movies", g))
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelAvgDuration, "Average Duration by Genre", v.AvgDurationByGenre, func(g []GenreStat) Panel {
		return chartPanel(BuildGenreChart("barh", "Average Duration by Genre", "Average Duration (minutes)", "Genre", g))
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelAvgVotes, "Average Voting Counts by Genre", v.AvgVotesByGenre, func(g []GenreStat) Panel {
		return chartPanel(BuildGenreChart("bar", "Average Voting Counts by Genre", "Genre", "Average Votes", g))
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelRatingDist, "Rating Distribution", v.RatingDistribution, func(s *RatingSummary) Panel {
		return chartPanel(
			BuildHistogram("Histogram of Ratings", s),
			BuildBoxplot("Boxplot of Ratings", s),
		)
	}))

	const leaderTitle = "Top-Rated Movie per Genre"
	d.Panels = append(d.Panels, sectionPanel(PanelTopPerGenre, leaderTitle, v.TopRatedPerGenre, func(l []GenreLeader) Panel {
		return Panel{Type: "table", Table: BuildLeaderTable(leaderTitle, l)}
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelVotesShare, "Most Popular Genres by Total Voting Counts", v.VotesShareByGenre, func(g []GenreStat) Panel {
		return chartPanel(BuildPieChart("Most Popular Genres by Total Voting Counts", g))
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelExtremes, "Shortest and Longest Movies", v.DurationExtremes, func(e *DurationExtremes) Panel {
		return Panel{Type: "metrics", Metrics: BuildExtremesMetrics(e)}
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelRatingHeat, "Average Ratings by Genre (Heatmap)", v.AvgRatingByGenreRow, func(g []GenreStat) Panel {
		return chartPanel(BuildHeatmap("Average Ratings by Genre", g))
	}))

	d.Panels = append(d.Panels, sectionPanel(PanelRatingVsVote, "Correlation: Rating vs. Voting Counts", v.RatingVotesPairs, func(rv *RatingVotes) Panel {
		return chartPanel(BuildScatter("Rating vs. Voting Counts", rv))
	}))

	return d
}

// Panel returns the panel with the given key, or nil.
func (d *Dashboard) Panel(key string) *Panel {
	for i := range d.Panels {
		if d.Panels[i].Key == key {
			return &d.Panels[i]
		}
	}
	return nil
}

// sectionPanel renders a section through build, or a notice panel when the
// section has no data.
func sectionPanel[T any](key, title string, s Section[T], build func(T) Panel) Panel {
	var p Panel
	if s.NoData {
		p = Panel{Type: "notice", Notice: s.Notice}
	} else {
		p = build(s.Data)
	}
	p.Key = key
	p.Title = title
	return p
}

// chartPanel wraps non-nil charts into a chart panel.
func chartPanel(charts ...*ChartConfig) Panel {
	p := Panel{Type: "chart"}
	for _, c := range charts {
		if c != nil {
			p.Charts = append(p.Charts, *c)
		}
	}
	if len(p.Charts) == 0 {
		p.Type = "notice"
		p.Notice = NoticeNoMatches
	}
	return p
}
