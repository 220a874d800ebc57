package nn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrAlreadyTraining = errors.New("network is already training")
	ErrNoLearningRule  = errors.New("no learning rule is set")
)

// TrainingSet is the boundary contract for datasets consumed by learning
// rules. Row returns the i-th example; target is nil for unlabeled data.
type TrainingSet interface {
	Size() int
	Row(i int) (input, target []float64)
}

// LearningRule is a pluggable training algorithm bound to one network and
// one training set per run. Run must poll cooperative cancellation (the
// stop flag and ctx) between iterations; there is no preemption, so a rule
// that never polls never stops. Rule implementations document their own
// polling granularity.
type LearningRule interface {
	SetNetwork(net *Network)
	SetTrainingSet(ts TrainingSet)
	Run(ctx context.Context) error
	StopLearning()
	Stopped() bool
}

// trainState is the network's Idle/Running training state machine. Only
// the state transitions are guarded; the graph itself stays unlocked.
type trainState struct {
	trainMu      sync.Mutex
	learningRule LearningRule
	training     bool
	trainingDone chan struct{}
	trainingErr  error
}

// SetLearningRule binds rule as the network's current learning rule,
// rebinding the rule's network reference to this instance. Rebinding is
// rejected while a run is active.
func (net *Network) SetLearningRule(rule LearningRule) error {
	if rule == nil {
		return errors.New("learning rule is required")
	}
	net.trainMu.Lock()
	defer net.trainMu.Unlock()
	if net.training {
		return ErrAlreadyTraining
	}
	rule.SetNetwork(net)
	net.learningRule = rule
	return nil
}

// LearningRule returns the currently bound learning rule, if any.
func (net *Network) LearningRule() LearningRule {
	net.trainMu.Lock()
	defer net.trainMu.Unlock()
	return net.learningRule
}

// LearnInSameThread runs the bound learning rule on the caller's goroutine
// and blocks until the rule's run loop returns, naturally or after a
// cooperative stop.
func (net *Network) LearnInSameThread(ctx context.Context, ts TrainingSet) error {
	return net.learnSync(ctx, ts, nil)
}

// LearnInSameThreadWith rebinds rule as the current learning rule first.
func (net *Network) LearnInSameThreadWith(ctx context.Context, ts TrainingSet, rule LearningRule) error {
	if rule == nil {
		return errors.New("learning rule is required")
	}
	return net.learnSync(ctx, ts, rule)
}

// LearnInNewThread starts the bound learning rule on its own goroutine and
// returns immediately. Progress is observable through the rule's own state,
// Training, WaitLearning and the change notifications the rule emits.
func (net *Network) LearnInNewThread(ctx context.Context, ts TrainingSet) error {
	return net.learnAsync(ctx, ts, nil)
}

// LearnInNewThreadWith rebinds rule as the current learning rule first.
func (net *Network) LearnInNewThreadWith(ctx context.Context, ts TrainingSet, rule LearningRule) error {
	if rule == nil {
		return errors.New("learning rule is required")
	}
	return net.learnAsync(ctx, ts, rule)
}

func (net *Network) learnSync(ctx context.Context, ts TrainingSet, rule LearningRule) error {
	bound, err := net.beginLearning(rule, ts)
	if err != nil {
		return err
	}
	runErr := bound.Run(ctx)
	net.finishLearning(runErr)
	return runErr
}

func (net *Network) learnAsync(ctx context.Context, ts TrainingSet, rule LearningRule) error {
	bound, err := net.beginLearning(rule, ts)
	if err != nil {
		return err
	}
	go func() {
		net.finishLearning(bound.Run(ctx))
	}()
	return nil
}

// beginLearning moves the state machine Idle -> Running. A second start
// while Running fails with ErrAlreadyTraining instead of racing.
func (net *Network) beginLearning(rule LearningRule, ts TrainingSet) (LearningRule, error) {
	if ts == nil {
		return nil, errors.New("training set is required")
	}
	net.trainMu.Lock()
	defer net.trainMu.Unlock()
	if net.training {
		return nil, ErrAlreadyTraining
	}
	if rule == nil {
		rule = net.learningRule
	}
	if rule == nil {
		return nil, ErrNoLearningRule
	}
	rule.SetNetwork(net)
	rule.SetTrainingSet(ts)
	net.learningRule = rule
	net.training = true
	net.trainingDone = make(chan struct{})
	net.trainingErr = nil
	return rule, nil
}

func (net *Network) finishLearning(err error) {
	net.trainMu.Lock()
	net.training = false
	net.trainingErr = err
	done := net.trainingDone
	net.trainMu.Unlock()
	if done != nil {
		close(done)
	}
	net.NotifyChange()
}

// StopLearning sets the current rule's cooperative stop flag. The running
// loop exits at its next polling point; nothing is interrupted preemptively.
func (net *Network) StopLearning() {
	net.trainMu.Lock()
	rule := net.learningRule
	net.trainMu.Unlock()
	if rule != nil {
		rule.StopLearning()
	}
}

// Training reports whether a learning run is active.
func (net *Network) Training() bool {
	net.trainMu.Lock()
	defer net.trainMu.Unlock()
	return net.training
}

// TrainingError returns the error the last run finished with. Errors raised
// inside a threaded run cannot unwind into the starter's stack, so they are
// retained here.
func (net *Network) TrainingError() error {
	net.trainMu.Lock()
	defer net.trainMu.Unlock()
	return net.trainingErr
}

// WaitLearning blocks until the active run's goroutine has exited, then
// returns the run's error. It returns immediately when no run is active.
func (net *Network) WaitLearning(ctx context.Context) error {
	net.trainMu.Lock()
	done := net.trainingDone
	net.trainMu.Unlock()
	if done == nil {
		return net.TrainingError()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return net.TrainingError()
	}
}

// BaseRule carries the bindings and the cooperative stop flag shared by
// learning-rule implementations. Embed it and implement Run. The stop flag
// survives a finished run; call ResetStop before reusing a stopped rule.
type BaseRule struct {
	mu          sync.RWMutex
	network     *Network
	trainingSet TrainingSet
	stop        atomic.Bool
}

func (r *BaseRule) SetNetwork(net *Network) {
	r.mu.Lock()
	r.network = net
	r.mu.Unlock()
}

func (r *BaseRule) Network() *Network {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.network
}

func (r *BaseRule) SetTrainingSet(ts TrainingSet) {
	r.mu.Lock()
	r.trainingSet = ts
	r.mu.Unlock()
}

func (r *BaseRule) TrainingSet() TrainingSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trainingSet
}

func (r *BaseRule) StopLearning() {
	r.stop.Store(true)
}

func (r *BaseRule) Stopped() bool {
	return r.stop.Load()
}

func (r *BaseRule) ResetStop() {
	r.stop.Store(false)
}

// ShouldStop is the polling point for run loops: it observes both the
// cooperative stop flag and ctx cancellation.
func (r *BaseRule) ShouldStop(ctx context.Context) bool {
	return r.stop.Load() || ctx.Err() != nil
}
