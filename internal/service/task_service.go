package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/TWRT/equipeapp/internal/cache"
	"github.com/TWRT/equipeapp/internal/models"
	"github.com/TWRT/equipeapp/internal/stats"
)

type TaskStore interface {
	Create(ctx context.Context, task models.NewTask) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
}

const tasksCacheKey = "tasks"

// TaskService serves task snapshots from a TTL cache and drops the cached
// snapshot after every successful write.
type TaskService struct {
	store  TaskStore
	cache  *cache.Memory[string, []models.Task]
	roster []models.TeamMember
	logger zerolog.Logger

	// gen counts completed writes. A refresh that started before a write
	// must not store its snapshot.
	mu  sync.Mutex
	gen uint64
}

func NewTaskService(
	store TaskStore,
	tasksCache *cache.Memory[string, []models.Task],
	roster []models.TeamMember,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		store:  store,
		cache:  tasksCache,
		roster: roster,
		logger: logger,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, task models.NewTask) (models.Task, error) {
	id, err := s.store.Create(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	s.invalidate()

	s.logger.Debug().
		Int64("id", id).
		Str("assignee", task.Assignee).
		Msg("created task")

	created, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("read created task: %w", err)
	}
	return created, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status models.Status) (models.Task, error) {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return models.Task{}, err
	}
	s.invalidate()

	s.logger.Debug().
		Int64("id", id).
		Str("status", string(status)).
		Msg("updated task status")

	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("read updated task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Delete(tasksCacheKey)
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (models.Task, error) {
	return s.store.Get(ctx, id)
}

// ListTasks returns every task. The result may lag behind storage by at most
// the cache TTL, and never lags behind writes made through this service.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	if tasks, ok := s.cache.Get(tasksCacheKey); ok {
		return slices.Clone(tasks), nil
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache.Set(tasksCacheKey, tasks)
	}
	s.mu.Unlock()

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded tasks from storage")

	return slices.Clone(tasks), nil
}

func (s *TaskService) FilterTasks(ctx context.Context, criteria stats.Criteria) ([]models.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Filter(tasks, criteria), nil
}

func (s *TaskService) FilterOptions(ctx context.Context) (stats.Options, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return stats.Options{}, err
	}
	return stats.FilterOptions(tasks), nil
}

func (s *TaskService) Dashboard(ctx context.Context) (stats.Summary, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Dashboard(tasks), nil
}

func (s *TaskService) TeamStats(ctx context.Context) ([]stats.MemberStats, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return stats.TeamStats(tasks, s.roster), nil
}
