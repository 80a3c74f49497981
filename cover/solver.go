package cover

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// How many nodes a searcher visits between context checks.
const ctxCheckInterval = 1 << 12

// Solution is one combination of representative words, in the order the
// search chose them, and the symbols it skipped.
type Solution struct {
	Words   []string
	Skipped []rune
}

// Options tune a Solver. The zero value runs single-threaded.
type Options struct {
	// Threads is how many root tasks run at once. Below 2 the search runs on
	// the calling goroutine.
	Threads int
	// OnTasks, if set, is called once with the number of root tasks.
	OnTasks func(n int)
	// OnTaskDone, if set, is called after each root task finishes. It may be
	// called from several goroutines.
	OnTaskDone func()
}

// Solver runs the backtracking search over a Problem.
//
// The root node is expanded first into its children: the skip child, if
// any, then one child per accepted candidate of the rarest symbol. Each child
// is a task. Because children never share state, tasks can run in parallel;
// their solutions are buffered and emitted in task order so the output is the
// same for any thread count.
type Solver struct {
	p    *Problem
	opts Options

	nodes     atomic.Uint64
	taskNodes []uint64
}

func NewSolver(p *Problem, opts Options) *Solver {
	return &Solver{p: p, opts: opts}
}

// Nodes is the number of search states visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// TaskNodes is the number of states visited in each root task of the last
// Solve.
func (s *Solver) TaskNodes() []uint64 {
	return s.taskNodes
}

// Solve runs the search to exhaustion, calling emit for every solution in a
// deterministic order. It stops early only if ctx is done or emit fails.
func (s *Solver) Solve(ctx context.Context, emit func(Solution) error) error {
	logger := zerolog.Ctx(ctx)
	s.nodes.Store(1)

	tstart := time.Now()
	root := newRootState(s.p)
	tasks := rootChildren(root)
	s.taskNodes = make([]uint64, len(tasks))
	if s.opts.OnTasks != nil {
		s.opts.OnTasks(len(tasks))
	}
	logger.Debug().Int("tasks", len(tasks)).Int("threads", s.opts.Threads).
		Str("root", root.String()).Msg("search-starting")

	var err error
	if s.opts.Threads < 2 {
		err = s.solveSerial(ctx, tasks, emit)
	} else {
		err = s.solveParallel(ctx, tasks, emit)
	}

	elapsed := time.Since(tstart)
	nodes := s.nodes.Load()
	logger.Info().Uint64("nodes", nodes).Dur("elapsed", elapsed).
		Float64("nps", float64(nodes)/elapsed.Seconds()).Msg("search-finished")
	return err
}

func (s *Solver) runTask(ctx context.Context, i int, task *state, emit func(Solution) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sr := &searcher{ctx: ctx, emit: emit}
	err := sr.search(task)
	s.taskNodes[i] = sr.nodes
	s.nodes.Add(sr.nodes)
	if s.opts.OnTaskDone != nil {
		s.opts.OnTaskDone()
	}
	return err
}

func (s *Solver) solveSerial(ctx context.Context, tasks []*state, emit func(Solution) error) error {
	for i, task := range tasks {
		if err := s.runTask(ctx, i, task, emit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Solver) solveParallel(ctx context.Context, tasks []*state, emit func(Solution) error) error {
	results := make([][]Solution, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Threads)
	for i, task := range tasks {
		g.Go(func() error {
			return s.runTask(gctx, i, task, func(sol Solution) error {
				results[i] = append(results[i], sol)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, sols := range results {
		for _, sol := range sols {
			if err := emit(sol); err != nil {
				return err
			}
		}
	}
	return nil
}

// rootChildren applies the root's transitions in search order and returns
// the accepted children instead of descending into them.
func rootChildren(root *state) []*state {
	var children []*state
	if ok, child := root.trySkipRarestUnused(); ok {
		children = append(children, child)
	}
	for _, id := range root.p.index.candidatesAt(root.firstUnusedRank()) {
		if ok, child := root.tryAddWord(id); ok {
			children = append(children, child)
		}
	}
	return children
}

type searcher struct {
	ctx   context.Context
	emit  func(Solution) error
	nodes uint64
}

func (sr *searcher) search(st *state) error {
	sr.nodes++
	if sr.nodes%ctxCheckInterval == 0 {
		if err := sr.ctx.Err(); err != nil {
			return err
		}
	}
	if st.isComplete() {
		return sr.emit(st.solution())
	}
	if ok, child := st.trySkipRarestUnused(); ok {
		if err := sr.search(child); err != nil {
			return err
		}
	}
	for _, id := range st.p.index.candidatesAt(st.firstUnusedRank()) {
		if ok, child := st.tryAddWord(id); ok {
			if err := sr.search(child); err != nil {
				return err
			}
		}
	}
	return nil
}
