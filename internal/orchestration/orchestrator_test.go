package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/chudnovsky/mocks"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
)

func validParams() chudnovsky.Params {
	p := chudnovsky.DefaultParams()
	p.Workers = 2
	return p
}

// countingDisplay counts snapshots it receives.
type countingDisplay struct {
	count atomic.Int64
}

func (d *countingDisplay) DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, _ io.Writer) {
	defer wg.Done()
	for range snapshots {
		d.count.Add(1)
	}
}

func TestExecuteForwardsSnapshots(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return("mock").AnyTimes()
	engine.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ chudnovsky.Params, r progress.Reporter, _ *cancellation.Token) (chudnovsky.Result, error) {
			for i := uint64(1); i <= 3; i++ {
				r.OnSnapshot(progress.Snapshot{Pi: big.NewFloat(3.14), Iteration: i * 10, Precision: 1000 + i*100})
			}
			return chudnovsky.Result{Iterations: 30, Precision: 1300, Snapshots: 3}, nil
		})

	var got []uint64
	reporter := progress.ReporterFunc(func(s progress.Snapshot) { got = append(got, s.Iteration) })
	display := &countingDisplay{}

	res, err := Execute(context.Background(), engine, validParams(), RunOptions{TimeLimit: NoTimeLimit}, reporter, display, io.Discard)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Errorf("reporter saw %v, want [10 20 30]", got)
	}
	if display.count.Load() != 3 {
		t.Errorf("display saw %d snapshots, want 3", display.count.Load())
	}
	if res.Iterations != 30 || res.Engine != "mock" || res.Elapsed <= 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExecuteValidatesBeforeStarting(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return("mock").AnyTimes()
	// No Run expectation: gomock fails the test if Run is called.

	p := validParams()
	p.BasePrecision = 5
	_, err := Execute(context.Background(), engine, p, RunOptions{TimeLimit: NoTimeLimit}, nil, nil, io.Discard)
	var vErr apperrors.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "base_precision" {
		t.Fatalf("expected base_precision validation error, got %v", err)
	}
}

func TestExecutePropagatesEngineErrors(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return("mock").AnyTimes()
	failure := apperrors.ArithmeticError{Iteration: 3, Precision: 1000, Cause: errors.New("NaN")}
	engine.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(chudnovsky.Result{}, failure)

	var logBuf bytes.Buffer
	_, err := Execute(context.Background(), engine, validParams(),
		RunOptions{TimeLimit: NoTimeLimit, Logger: logging.NewLogger(&logBuf, "orchestrator")}, nil, nil, io.Discard)
	var arithErr apperrors.ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError, got %v", err)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("run failed")) {
		t.Errorf("failure should be logged, got %s", logBuf.String())
	}
}

func TestExecuteTimeLimitCancelsToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return("mock").AnyTimes()
	engine.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ chudnovsky.Params, _ progress.Reporter, tok *cancellation.Token) (chudnovsky.Result, error) {
			select {
			case <-tok.Done():
				return chudnovsky.Result{}, nil
			case <-time.After(5 * time.Second):
				return chudnovsky.Result{}, errors.New("token was never cancelled")
			}
		})

	_, err := Execute(context.Background(), engine, validParams(),
		RunOptions{TimeLimit: 20 * time.Millisecond, PollInterval: 5 * time.Millisecond}, nil, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
}

func TestExecuteContextCancelsToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return("mock").AnyTimes()
	started := make(chan struct{})
	engine.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ chudnovsky.Params, _ progress.Reporter, tok *cancellation.Token) (chudnovsky.Result, error) {
			close(started)
			<-tok.Done()
			return chudnovsky.Result{Iterations: 42}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	res, err := Execute(ctx, engine, validParams(), RunOptions{TimeLimit: NoTimeLimit}, nil, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 42 {
		t.Errorf("Iterations = %d, want 42", res.Iterations)
	}
}

func TestExecuteWithRealEngines(t *testing.T) {
	t.Parallel()
	factory := chudnovsky.NewDefaultFactory()

	for _, name := range factory.List() {
		t.Run(name+"/zero time limit yields no snapshot", func(t *testing.T) {
			t.Parallel()
			engine, _ := factory.Get(name)
			res, err := Execute(context.Background(), engine, validParams(), RunOptions{TimeLimit: 0}, nil, nil, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			if res.HasSnapshot() || res.Iterations != 0 {
				t.Errorf("expected an empty run, got %+v", res)
			}
		})

		t.Run(name+"/short time limit terminates", func(t *testing.T) {
			t.Parallel()
			engine, _ := factory.Get(name)
			done := make(chan struct{})
			var res chudnovsky.Result
			var err error
			go func() {
				defer close(done)
				res, err = Execute(context.Background(), engine, validParams(),
					RunOptions{TimeLimit: 200 * time.Millisecond, PollInterval: 10 * time.Millisecond}, nil, nil, io.Discard)
			}()
			select {
			case <-done:
			case <-time.After(30 * time.Second):
				t.Fatal("run did not stop after its time limit")
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.Iterations == 0 {
				t.Errorf("expected some terms to be summed, got %+v", res)
			}
		})
	}
}

func TestGetEngine(t *testing.T) {
	t.Parallel()
	factory := chudnovsky.NewDefaultFactory()

	eng, err := GetEngine(config.AppConfig{Engine: "chunked"}, factory)
	if err != nil || eng.Name() != "chunked" {
		t.Fatalf("GetEngine(chunked) = %v, %v", eng, err)
	}

	_, err = GetEngine(config.AppConfig{Engine: "bbp"}, factory)
	if !apperrors.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("chunked, sequential")) {
		t.Errorf("error should list engines: %v", err)
	}
}
