package harvest

import (
	"context"

	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/gitbucket"
	"github.com/quantmind-br/githarvest-go/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// Runner sequences one harvest run: fetch the repository catalog and the
// run labels, then process every repository in catalog order. Repositories
// are independent; one failing never aborts the run.
type Runner struct {
	client      *gitbucket.Client
	harvester   *Harvester
	resolveRole domain.RoleResolver
	throttle    *utils.Throttle
	progress    bool
	log         *utils.Logger
}

// RunnerOptions contains options for creating a Runner
type RunnerOptions struct {
	Client       *gitbucket.Client
	Harvester    *Harvester
	RoleResolver domain.RoleResolver
	Throttle     *utils.Throttle
	Progress     bool
	Logger       *utils.Logger
}

// NewRunner creates a new Runner
func NewRunner(opts RunnerOptions) *Runner {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	resolve := opts.RoleResolver
	if resolve == nil {
		resolve = func(user string) string { return user }
	}
	throttle := opts.Throttle
	if throttle == nil {
		throttle = utils.NewThrottle(0)
	}
	return &Runner{
		client:      opts.Client,
		harvester:   opts.Harvester,
		resolveRole: resolve,
		throttle:    throttle,
		progress:    opts.Progress,
		log:         log.WithComponent("run"),
	}
}

// Run executes one harvest. It returns an error only when there is nothing
// to harvest or the context is canceled; everything else is best-effort and
// surfaces through logs and the failure recorder.
func (r *Runner) Run(ctx context.Context) error {
	repos := r.client.ListRepositories(ctx)
	if len(repos) == 0 {
		r.log.Warn().Msg("token is invalid or no repository")
		return domain.ErrNoRepositories
	}

	labels := r.client.FetchLabels(ctx)

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.NewOptions(len(repos),
			progressbar.OptionSetDescription("Harvesting repositories"),
			progressbar.OptionShowCount(),
		)
	}

	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.harvestRepository(ctx, repo, labels)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return nil
}

// harvestRepository processes one repository: files first, then issues, then
// wiki pages. Anything escaping the per-unit isolation is caught here so the
// run continues with the next repository.
func (r *Runner) harvestRepository(ctx context.Context, repo domain.Repository, labels domain.RunLabels) {
	log := r.log.WithRepository(repo.FullName())
	defer func() {
		if p := recover(); p != nil {
			log.Warn().Interface("panic", p).Msg("failed to process repository")
		}
	}()

	roles := BuildRoleList(repo, r.resolveRole)

	// An empty branch means an empty git repository: no files to walk, but
	// issues and wiki are still harvested.
	if repo.Branch != "" {
		ref := r.client.ResolveRef(ctx, repo.Owner, repo.Name, repo.Branch)
		log.Info().Str("ref", ref).Msg("harvesting files")
		r.client.WalkTree(ctx, repo.Owner, repo.Name, ref, func(path string) {
			r.harvester.HarvestFile(ctx, repo, ref, path, roles, labels.Source)
			_ = r.throttle.Wait(ctx)
		})
	}

	log.Info().Int("count", repo.IssueCount+repo.PullCount).Msg("harvesting issues")
	for id := 1; id <= repo.IssueCount+repo.PullCount; id++ {
		if ctx.Err() != nil {
			return
		}
		r.harvester.HarvestIssue(ctx, repo, id, roles, labels.Issue)
		_ = r.throttle.Wait(ctx)
	}

	log.Info().Msg("harvesting wiki")
	r.harvester.HarvestWiki(ctx, repo, roles, labels.Wiki)
}
