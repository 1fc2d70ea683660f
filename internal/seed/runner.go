package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/config"
	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/events"
	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/repository"
	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

// Options tunes a provisioning run.
type Options struct {
	PasswordScheme string
	BcryptCost     int
	Now            func() time.Time
}

// Repositories overrides the stores the runner writes through. Nil fields
// fall back to the mongo-backed repositories of the target database.
type Repositories struct {
	Employees repository.EmployeeRepository
	Projects  repository.ProjectRepository
	Tasks     repository.TaskRepository
	Users     repository.UserRepository
}

// Dependencies bundles what the runner talks to. Dispatcher may be nil.
type Dependencies struct {
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Out          io.Writer
	Repositories Repositories
}

// Runner drops, recreates and seeds the database in a fixed order.
type Runner struct {
	db         *mongo.Database
	employees  repository.EmployeeRepository
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	out        io.Writer
	opts       Options
	now        time.Time
}

// NewRunner builds a runner against db.
func NewRunner(db *mongo.Database, deps Dependencies, opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PasswordScheme == "" {
		opts.PasswordScheme = config.PasswordSchemeSHA256
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	repos := deps.Repositories
	if repos.Employees == nil {
		repos.Employees = repository.NewEmployeeRepository(db)
	}
	if repos.Projects == nil {
		repos.Projects = repository.NewProjectRepository(db)
	}
	if repos.Tasks == nil {
		repos.Tasks = repository.NewTaskRepository(db)
	}
	if repos.Users == nil {
		repos.Users = repository.NewUserRepository(db)
	}
	return &Runner{
		db:         db,
		employees:  repos.Employees,
		projects:   repos.Projects,
		tasks:      repos.Tasks,
		users:      repos.Users,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		out:        out,
		opts:       opts,
	}
}

type step struct {
	name string
	run  func(context.Context) error
}

// Run executes every step in order. The first failure aborts the run and
// is returned wrapped with the step name; nothing is rolled back.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.now = r.opts.Now().UTC().Truncate(time.Millisecond)

	steps := []step{
		{"drop collections", r.dropCollections},
		{"create collections", r.createCollections},
		{"create indexes", r.createIndexes},
		{"insert employees", r.insertEmployees},
		{"insert projects", r.insertProjects},
		{"insert tasks", r.insertTasks},
		{"insert users", r.insertUsers},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, errorutil.WrapStep(s.name, err)
		}
		start := time.Now()
		if err := s.run(ctx); err != nil {
			r.logger.Error("setup step failed", zap.String("step", s.name), zap.Error(err))
			return nil, errorutil.WrapStep(s.name, err)
		}
		r.logger.Info("setup step done", zap.String("step", s.name), zap.Duration("duration", time.Since(start)))
	}

	report, err := r.buildReport(ctx)
	if err != nil {
		return nil, errorutil.WrapStep("summarize", err)
	}
	r.announce(ctx, report)
	return report, nil
}

func (r *Runner) dropCollections(ctx context.Context) error {
	return persistence.DropCollections(ctx, r.db, r.logger)
}

func (r *Runner) createCollections(ctx context.Context) error {
	r.printf("Creating collections...\n")
	title := cases.Title(language.English)
	return persistence.CreateCollections(ctx, r.db, r.logger, func(name string) {
		r.printf("✅ %s collection created\n", title.String(name))
	})
}

func (r *Runner) createIndexes(ctx context.Context) error {
	if err := persistence.CreateIndexes(ctx, r.db, r.logger); err != nil {
		return err
	}
	r.printf("✅ Indexes created\n")
	return nil
}

func (r *Runner) insertEmployees(ctx context.Context) error {
	if _, err := r.employees.InsertMany(ctx, Employees(r.now)); err != nil {
		return err
	}
	r.printf("✅ Sample employees inserted\n")
	return nil
}

func (r *Runner) insertProjects(ctx context.Context) error {
	if _, err := r.projects.InsertMany(ctx, Projects(r.now)); err != nil {
		return err
	}
	r.printf("✅ Sample projects inserted\n")
	return nil
}

// insertTasks resolves each task's project by name, so projects must already be inserted.
func (r *Runner) insertTasks(ctx context.Context) error {
	fixtures := Tasks(r.now)
	projectIDs := make(map[string]primitive.ObjectID, len(fixtures))

	docs := make([]domain.Task, 0, len(fixtures))
	for _, f := range fixtures {
		id, ok := projectIDs[f.ProjectName]
		if !ok {
			project, err := r.projects.GetByName(ctx, f.ProjectName)
			if err != nil {
				return fmt.Errorf("resolve project %q: %w", f.ProjectName, err)
			}
			id = project.ID
			projectIDs[f.ProjectName] = id
		}
		task := f.Task
		task.ProjectID = id
		docs = append(docs, task)
	}

	if _, err := r.tasks.InsertMany(ctx, docs); err != nil {
		return err
	}
	r.printf("✅ Sample tasks inserted\n")
	return nil
}

func (r *Runner) insertUsers(ctx context.Context) error {
	docs := make([]domain.User, 0, len(Credentials))
	for _, cred := range Credentials {
		password := cred.Digest
		if r.opts.PasswordScheme == config.PasswordSchemeBcrypt {
			hashed, err := auth.HashPassword(cred.Password, r.opts.BcryptCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", cred.Username, err)
			}
			password = hashed
		}
		docs = append(docs, domain.User{
			Username:  cred.Username,
			Password:  password,
			Role:      cred.Role,
			CreatedAt: r.now,
		})
	}

	if _, err := r.users.InsertMany(ctx, docs); err != nil {
		return err
	}
	r.printf("✅ Users inserted\n")
	return nil
}

func (r *Runner) buildReport(ctx context.Context) (*Report, error) {
	report := &Report{
		Database:    r.db.Name(),
		Collections: persistence.CollectionNames(),
		Counts:      make(map[string]int64, len(persistence.Collections)),
		Credentials: Credentials,
		SeededAt:    r.now,
	}

	counters := map[string]func(context.Context) (int64, error){
		persistence.EmployeesCollection: r.employees.Count,
		persistence.ProjectsCollection:  r.projects.Count,
		persistence.TasksCollection:     r.tasks.Count,
		persistence.UsersCollection:     r.users.Count,
	}
	for name, count := range counters {
		n, err := count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		report.Counts[name] = n
	}

	orphans, err := r.tasks.CountOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orphan tasks: %w", err)
	}
	report.OrphanTasks = orphans
	return report, nil
}

// announce tells cache holders the collections were reseeded. Failures are logged only.
func (r *Runner) announce(ctx context.Context, report *Report) {
	if r.dispatcher == nil {
		return
	}
	for _, name := range report.Collections {
		ev := events.NewRecordsChanged(name, "setup", events.RecordsChangedPayload{
			Action: events.ActionReseeded,
			Count:  report.Counts[name],
		})
		if err := r.dispatcher.Publish(ctx, ev); err != nil {
			r.logger.Warn("reseed announcement failed", zap.String("collection", name), zap.Error(err))
		}
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
