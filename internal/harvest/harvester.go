package harvest

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/gitbucket"
	"github.com/quantmind-br/githarvest-go/internal/utils"
)

// Harvester fetches one unit at a time (a file, an issue, or a wiki page),
// assembles the uniform output record, and hands it to the sink. A failure
// never escapes the unit it belongs to.
type Harvester struct {
	client    *gitbucket.Client
	extractor domain.ContentExtractor
	sink      domain.RecordSink
	failures  domain.FailureRecorder
	stats     domain.StatsRecorder
	throttle  *utils.Throttle
	log       *utils.Logger
}

// HarvesterOptions contains options for creating a Harvester
type HarvesterOptions struct {
	Client    *gitbucket.Client
	Extractor domain.ContentExtractor
	Sink      domain.RecordSink
	Failures  domain.FailureRecorder
	Stats     domain.StatsRecorder
	Throttle  *utils.Throttle
	Logger    *utils.Logger
}

// NewHarvester creates a new Harvester
func NewHarvester(opts HarvesterOptions) *Harvester {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	stats := opts.Stats
	if stats == nil {
		stats = NewLogStats(log)
	}
	failures := opts.Failures
	if failures == nil {
		failures = nopFailures{}
	}
	throttle := opts.Throttle
	if throttle == nil {
		throttle = utils.NewThrottle(0)
	}
	return &Harvester{
		client:    opts.Client,
		extractor: opts.Extractor,
		sink:      opts.Sink,
		failures:  failures,
		stats:     stats,
		throttle:  throttle,
		log:       log.WithComponent("harvester"),
	}
}

// HarvestFile harvests one file at the given tree path.
func (h *Harvester) HarvestFile(ctx context.Context, repo domain.Repository, ref, path string, roles []string, label string) {
	apiURL := h.client.ContentsURL(repo.Owner, repo.Name, path, "ref="+ref+"&large_file=true")
	viewURL := h.client.BlobURL(repo.Owner, repo.Name, ref, path)

	h.storeUnit(ctx, repo, viewURL, func(rec domain.Record) error {
		h.log.Debug().Str("url", apiURL).Msg("get file content")
		fields, err := h.extractor.Extract(ctx, apiURL)
		if err != nil {
			return err
		}
		for k, v := range fields {
			rec[k] = v
		}
		rec[domain.FieldURL] = viewURL
		rec[domain.FieldRole] = roles
		rec[domain.FieldLabel] = []string{label}
		return nil
	})
}

// HarvestIssue harvests one issue or pull request by id. The record content
// is the issue body followed by all comment bodies, newline-joined.
func (h *Harvester) HarvestIssue(ctx context.Context, repo domain.Repository, id int, roles []string, label string) {
	apiURL := h.client.IssueAPIURL(repo.Owner, repo.Name, id)
	viewURL := h.client.IssueViewURL(repo.Owner, repo.Name, id)

	h.storeUnit(ctx, repo, viewURL, func(rec domain.Record) error {
		h.log.Debug().Str("url", apiURL).Msg("get issue")

		var title, content string
		issue, err := h.client.Issue(ctx, repo.Owner, repo.Name, id)
		if err != nil {
			// Degraded, not fatal: comments may still exist.
			h.log.Warn().Err(err).Str("url", apiURL).Msg("failed to fetch issue")
		} else {
			title = issue.Title
			content = issue.Body
		}

		comments := h.client.IssueComments(ctx, apiURL)
		content += "\n" + strings.Join(comments, "\n")

		rec[domain.FieldTitle] = title
		rec[domain.FieldContent] = content
		rec[domain.FieldURL] = viewURL
		rec[domain.FieldRole] = roles
		rec[domain.FieldLabel] = []string{label}
		return nil
	})
}

// HarvestWiki lists a repository's wiki pages once and harvests each page.
func (h *Harvester) HarvestWiki(ctx context.Context, repo domain.Repository, roles []string, label string) {
	pages := h.client.WikiPages(ctx, repo.Owner, repo.Name)

	for _, page := range pages {
		if ctx.Err() != nil {
			return
		}

		pageURL := h.client.WikiPageContentURL(repo.Owner, repo.Name, page)
		viewURL := h.client.WikiViewURL(repo.Owner, repo.Name, page)

		h.storeUnit(ctx, repo, viewURL, func(rec domain.Record) error {
			h.log.Debug().Str("url", pageURL).Msg("get wiki page")
			fields, err := h.extractor.Extract(ctx, pageURL)
			if err != nil {
				return err
			}
			for k, v := range fields {
				rec[k] = v
			}
			rec[domain.FieldURL] = viewURL
			rec[domain.FieldRole] = roles
			rec[domain.FieldLabel] = []string{label}
			return nil
		})

		if err := h.throttle.Wait(ctx); err != nil {
			return
		}
	}
}

// storeUnit runs the common per-unit lifecycle: begin, build the record,
// record prepared, emit, record finished; on any failure (including a
// panic) log it, report it, record exception. Done fires exactly once.
func (h *Harvester) storeUnit(ctx context.Context, repo domain.Repository, viewURL string, build func(rec domain.Record) error) {
	key := &domain.StatsKey{URL: viewURL}
	h.stats.Begin(key)
	defer h.stats.Done(key)

	rec := domain.Record{}
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic while harvesting %s: %v", viewURL, p)
			}
		}()
		if err := build(rec); err != nil {
			return err
		}
		h.stats.Record(key, domain.StatsPrepared)
		if u, ok := rec[domain.FieldURL].(string); ok && u != "" {
			key.URL = u
		}
		if err := h.sink.Store(ctx, rec); err != nil {
			return err
		}
		h.stats.Record(key, domain.StatsFinished)
		return nil
	}()
	if err == nil {
		return
	}

	h.log.Warn().Err(err).Str("url", viewURL).Interface("record", rec).Msg("failed to harvest unit")
	failure := domain.Failure{
		ErrorType:  domain.ErrorType(err),
		URL:        viewURL,
		Repository: repo.FullName(),
		Message:    err.Error(),
	}
	if storeErr := h.failures.Store(ctx, failure); storeErr != nil {
		h.log.Warn().Err(storeErr).Str("url", viewURL).Msg("failed to record failure")
	}
	h.stats.Record(key, domain.StatsException)
}
