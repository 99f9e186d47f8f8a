//go:build !js && !wasm

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/himanishpuri/GenreDNA/pkg/models"
)

const (
	topGenresShown = 5
	barWidth       = 24
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func genreStyle(g models.Genre) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color()))
}

// bar renders p in [0,1] as a fixed-width bar.
func bar(p float64) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func percent(p float64) string {
	return fmt.Sprintf("%5.1f%%", p*100)
}

func renderPrediction(w io.Writer, res *models.RecommendationResult) {
	pred := res.Prediction
	fmt.Fprintf(w, "\n✅ %s %s (%s confidence)\n\n",
		titleStyle.Render("Predicted genre:"),
		genreStyle(pred.Genre).Bold(true).Render(pred.Genre.Label()),
		strings.TrimSpace(percent(pred.Confidence)))

	fmt.Fprintln(w, titleStyle.Render("Genre distribution"))
	for _, share := range models.TopGenres(pred.Probabilities, topGenresShown) {
		style := genreStyle(share.Genre)
		fmt.Fprintf(w, "  %-10s %s %s\n",
			share.Genre.Label(), style.Render(bar(share.Probability)), percent(share.Probability))
	}

	fmt.Fprintln(w)
	if len(res.Recommendations) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No recommendations for this genre."))
		return
	}

	fmt.Fprintln(w, titleStyle.Render("Recommended songs"))
	for i, rec := range res.Recommendations {
		line := fmt.Sprintf("  %d. %s - %s", i+1, rec.Title, rec.Artist)
		if rec.Similarity != nil {
			line += fmt.Sprintf("  %s match", strings.TrimSpace(percent(*rec.Similarity)))
		}
		fmt.Fprintf(w, "%s %s\n", line, dimStyle.Render("["+rec.Duration+"]"))
	}
}

func renderSamples(w io.Writer, samples []models.SampleAudio) {
	if len(samples) == 0 {
		fmt.Fprintln(w, "No samples available.")
		return
	}
	fmt.Fprintf(w, "🎵 %d samples\n\n", len(samples))
	for _, s := range samples {
		fmt.Fprintf(w, "  %-10s %-28s %s\n", s.ID, s.Name, genreStyle(s.Genre).Render(s.Genre.Label()))
	}
}

func renderCatalog(w io.Writer, songs []models.Song) {
	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs found.")
		return
	}
	fmt.Fprintf(w, "🎵 %d songs\n\n", len(songs))
	for _, s := range songs {
		fmt.Fprintf(w, "  %-12s %-30s %-24s %-10s %s\n",
			s.ID, s.Title, s.Artist, genreStyle(s.Genre).Render(s.Genre.Label()), s.Duration)
	}
}
