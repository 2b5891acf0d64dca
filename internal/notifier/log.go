package notifier

import (
	"log/slog"

	"github.com/amishk599/jobscrapper/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes search results to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each job followed by per-source and total counts.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(keyword string, jobs []model.Job) error {
	perSource := make(map[string]int)
	var order []string
	for _, j := range jobs {
		n.logger.Info("job",
			"source", j.Source,
			"position", j.Position,
			"company", j.Company,
			"condition", j.Condition,
			"link", j.Link,
		)
		if _, ok := perSource[j.Source]; !ok {
			order = append(order, j.Source)
		}
		perSource[j.Source]++
	}

	args := []any{"keyword", keyword, "total", len(jobs)}
	for _, src := range order {
		args = append(args, src, perSource[src])
	}
	n.logger.Info("search results", args...)
	return nil
}
