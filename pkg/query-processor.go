/*
 * This file is part of research-engine.
 *
 * research-engine is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * research-engine is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with research-engine.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pkg

import (
	"context"
	"fmt"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// failedMessage is the only error text a failed run exposes. The cause is logged,
// never returned: a failed query has to be resubmitted as a new one.
const failedMessage = "Query processing failed. Please resubmit the query as a new request."

const cancelledStep = "Query cancelled"

type ProcessorConfig struct {
	ValidateDelay   time.Duration
	AnonymizeDelay  time.Duration
	AggregateDelay  time.Duration
	FinalizeDelay   time.Duration
	MaxInFlight     int
	DownloadBaseURL string
	KAnonymityFloor int
}

func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ValidateDelay:   2 * time.Second,
		AnonymizeDelay:  3 * time.Second,
		AggregateDelay:  4 * time.Second,
		FinalizeDelay:   2 * time.Second,
		MaxInFlight:     64,
		DownloadBaseURL: "https://datasets.research-engine.local",
		KAnonymityFloor: 5,
	}
}

// queryEvent advances the lifecycle state machine.
type queryEvent string

const (
	eventStartValidation    queryEvent = "start-validation"
	eventStartProcessing    queryEvent = "start-processing"
	eventContinueProcessing queryEvent = "continue-processing"
	eventComplete           queryEvent = "complete"
	eventFail               queryEvent = "fail"
	eventCancel             queryEvent = "cancel"
)

type transition struct {
	next     QueryState
	progress int
}

// transitions is the authoritative (state, event) -> (state, progress) table.
// Terminal states have no entries: nothing moves a query out of them.
var transitions = map[QueryState]map[queryEvent]transition{
	StateSubmitted: {
		eventStartValidation: {StateValidating, 25},
		eventFail:            {StateFailed, 0},
		eventCancel:          {StateCancelled, 0},
	},
	StateValidating: {
		eventStartProcessing: {StateProcessing, 60},
		eventFail:            {StateFailed, 0},
		eventCancel:          {StateCancelled, 0},
	},
	StateProcessing: {
		eventContinueProcessing: {StateProcessing, 60},
		eventComplete:           {StateCompleted, 100},
		eventFail:               {StateFailed, 0},
		eventCancel:             {StateCancelled, 0},
	},
}

// stage couples one scheduled step of the pipeline to the event it raises and the
// work it performs. The stage implementations live in the stage-*.go files.
type stage struct {
	step   string
	agent  string
	action string
	event  queryEvent
	delay  func(cfg ProcessorConfig) time.Duration
	run    func(p *QueryProcessor, run *queryRun) (string, error)
}

var stages = []stage{
	{
		step:   "Validating query",
		agent:  "validation-agent",
		action: "Query validation",
		event:  eventStartValidation,
		delay:  func(cfg ProcessorConfig) time.Duration { return cfg.ValidateDelay },
		run:    (*QueryProcessor).stageValidateQuery,
	},
	{
		step:   "Anonymizing dataset",
		agent:  "anonymization-agent",
		action: "Dataset anonymization",
		event:  eventStartProcessing,
		delay:  func(cfg ProcessorConfig) time.Duration { return cfg.AnonymizeDelay },
		run:    (*QueryProcessor).stageAnonymizeDataset,
	},
	{
		step:   "Aggregating eligible records",
		agent:  "aggregation-agent",
		action: "Record aggregation",
		event:  eventContinueProcessing,
		delay:  func(cfg ProcessorConfig) time.Duration { return cfg.AggregateDelay },
		run:    (*QueryProcessor).stageAggregateRecords,
	},
	{
		step:   "Finalizing dataset summary",
		agent:  "completion-agent",
		action: "Summary finalization",
		event:  eventComplete,
		delay:  func(cfg ProcessorConfig) time.Duration { return cfg.FinalizeDelay },
		run:    (*QueryProcessor).stageFinalizeSummary,
	},
}

// queryRun is the scratchpad one pipeline run threads through its stages.
type queryRun struct {
	queryID       string
	query         ResearchQuery
	methods       []string
	eligible      []string
	knownPatients int
	summary       *DatasetSummary
	report        string
	downloadURL   string
	expiresAt     time.Time
	completedAt   time.Time
}

// QueryProcessor owns the asynchronous lifecycle of research queries. Each accepted
// submission gets its own goroutine and cancellable context; transitions for a
// single query are strictly sequential because that goroutine is the only writer.
type QueryProcessor struct {
	store     QueryStore
	ledger    *ConsentLedger
	validator *QueryValidator
	cfg       ProcessorConfig

	rootCtx    context.Context
	rootCancel context.CancelFunc

	mu      sync.Mutex
	cancels map[string]context.CancelFunc

	sem chan struct{}
	wg  sync.WaitGroup
	now func() time.Time
}

func NewQueryProcessor(store QueryStore, ledger *ConsentLedger, validator *QueryValidator, cfg ProcessorConfig) *QueryProcessor {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultProcessorConfig().MaxInFlight
	}
	rootCtx, rootCancel := context.WithCancel(context.Background())
	return &QueryProcessor{
		store:      store,
		ledger:     ledger,
		validator:  validator,
		cfg:        cfg,
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
		cancels:    map[string]context.CancelFunc{},
		sem:        make(chan struct{}, cfg.MaxInFlight),
		now:        time.Now,
	}
}

// SubmitQuery validates the query, writes the initial submitted record and starts
// the staged pipeline. It returns as soon as that record is stored; all later
// transitions happen out-of-band.
func (p *QueryProcessor) SubmitQuery(ctx context.Context, query ResearchQuery) (string, error) {
	if err := p.validator.Validate(query); err != nil {
		return "", err
	}

	select {
	case p.sem <- struct{}{}:
	default:
		return "", ErrEngineBusy
	}

	queryID := uuid.NewV4().String()
	submittedAt := p.now()
	result := QueryResult{
		QueryStatus: QueryStatus{
			QueryID:                queryID,
			Status:                 StateSubmitted,
			Progress:               10,
			CurrentStep:            "Query submitted",
			EstimatedTimeRemaining: p.remainingAfter(-1).String(),
			LastUpdated:            submittedAt,
		},
		ResearcherID: query.ResearcherID,
		StudyTitle:   query.StudyTitle,
		SubmittedAt:  submittedAt,
		ProcessingLog: []LogEntry{{
			Timestamp: submittedAt,
			Agent:     "intake-agent",
			Action:    "Query submission",
			Details:   fmt.Sprintf("Accepted query for study %q with approval %s", query.StudyTitle, query.EthicalApprovalID),
		}},
	}
	if err := p.store.CreateQuery(result); err != nil {
		<-p.sem
		logger().WithError(err).Error("could not store submitted query")
		return "", fmt.Errorf("could not store submitted query: %w", err)
	}

	queryCtx, cancel := context.WithCancel(p.rootCtx)
	p.mu.Lock()
	p.cancels[queryID] = cancel
	p.mu.Unlock()

	run := &queryRun{queryID: queryID, query: query}
	p.wg.Add(1)
	go p.process(queryCtx, run)

	logger().Debugf("accepted query %s for researcher %s", queryID, query.ResearcherID)
	metricQueriesSubmitted.Inc()
	return queryID, nil
}

// CancelQuery cancels the pipeline of a pending query. It reports whether a
// pending run was actually cancelled; terminal or unknown queries return false.
func (p *QueryProcessor) CancelQuery(queryID string) bool {
	p.mu.Lock()
	cancel, ok := p.cancels[queryID]
	p.mu.Unlock()
	if !ok {
		return false
	}
	cancel()
	return true
}

// InFlight returns the number of queries whose pipeline has not finished.
func (p *QueryProcessor) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cancels)
}

// Shutdown cancels every pending pipeline and waits for the goroutines to exit.
func (p *QueryProcessor) Shutdown() {
	p.rootCancel()
	p.wg.Wait()
}

func (p *QueryProcessor) process(ctx context.Context, run *queryRun) {
	defer p.wg.Done()
	defer p.finish(run.queryID)

	start := p.now()
	for i, st := range stages {
		select {
		case <-ctx.Done():
			p.markCancelled(run.queryID)
			return
		case <-time.After(st.delay(p.cfg)):
		}

		details, err := st.run(p, run)
		if err != nil {
			logger().WithError(err).Errorf("stage %q failed for query %s", st.step, run.queryID)
			p.markFailed(run.queryID)
			return
		}
		if err := p.advance(run, st, i, details); err != nil {
			logger().WithError(err).Errorf("could not record transition %q for query %s", st.event, run.queryID)
			p.markFailed(run.queryID)
			return
		}
	}
	metricQueriesCompleted.Inc()
	metricProcessingDuration.Observe(p.now().Sub(start).Seconds())
}

// advance applies one event to the stored query through the transition table and
// appends the stage's log entry.
func (p *QueryProcessor) advance(run *queryRun, st stage, stageIndex int, details string) error {
	status, err := p.store.GetQueryStatus(run.queryID)
	if err != nil {
		return err
	}
	if status == nil {
		return ErrQueryNotFound
	}
	next, ok := transitions[status.Status][st.event]
	if !ok {
		return fmt.Errorf("no transition for event %q from state %q", st.event, status.Status)
	}

	remaining := p.remainingAfter(stageIndex).String()
	if next.next.Terminal() {
		remaining = ""
	}
	patch := QueryPatch{
		Status:                 &next.next,
		Progress:               &next.progress,
		CurrentStep:            &st.step,
		EstimatedTimeRemaining: &remaining,
	}
	if st.event == eventComplete {
		patch.CompletedAt = &run.completedAt
		patch.DatasetSummary = run.summary
		patch.DownloadURL = &run.downloadURL
		patch.ExpiresAt = &run.expiresAt
		patch.SummaryReport = &run.report
	}
	if err := p.store.UpdateQuery(run.queryID, patch); err != nil {
		return err
	}
	return p.store.AppendLogEntry(run.queryID, LogEntry{
		Timestamp: p.now(),
		Agent:     st.agent,
		Action:    st.action,
		Details:   details,
	})
}

// remainingAfter sums the delays of the stages after the given index. Index -1
// means the whole pipeline is still ahead.
func (p *QueryProcessor) remainingAfter(stageIndex int) time.Duration {
	var remaining time.Duration
	for i := stageIndex + 1; i < len(stages); i++ {
		remaining += stages[i].delay(p.cfg)
	}
	return remaining.Round(time.Second)
}

func (p *QueryProcessor) markCancelled(queryID string) {
	p.writeTerminal(queryID, eventCancel, QueryPatch{}, LogEntry{
		Timestamp: p.now(),
		Agent:     "lifecycle-agent",
		Action:    "Query cancellation",
		Details:   "Pending processing stages stopped at caller request",
	})
	metricQueriesCancelled.Inc()
}

func (p *QueryProcessor) markFailed(queryID string) {
	message := failedMessage
	p.writeTerminal(queryID, eventFail, QueryPatch{ErrorMessage: &message}, LogEntry{
		Timestamp: p.now(),
		Agent:     "lifecycle-agent",
		Action:    "Query failure",
		Details:   failedMessage,
	})
	metricQueriesFailed.Inc()
}

func (p *QueryProcessor) writeTerminal(queryID string, event queryEvent, patch QueryPatch, entry LogEntry) {
	status, err := p.store.GetQueryStatus(queryID)
	if err != nil || status == nil {
		return
	}
	next, ok := transitions[status.Status][event]
	if !ok {
		// already terminal
		return
	}
	step := entry.Action
	if event == eventCancel {
		step = cancelledStep
	}
	empty := ""
	patch.Status = &next.next
	patch.Progress = &next.progress
	patch.CurrentStep = &step
	patch.EstimatedTimeRemaining = &empty
	if err := p.store.UpdateQuery(queryID, patch); err != nil {
		logger().WithError(err).Errorf("could not write terminal state for query %s", queryID)
		return
	}
	if err := p.store.AppendLogEntry(queryID, entry); err != nil {
		logger().WithError(err).Errorf("could not append terminal log entry for query %s", queryID)
	}
}

func (p *QueryProcessor) finish(queryID string) {
	p.mu.Lock()
	cancel, ok := p.cancels[queryID]
	delete(p.cancels, queryID)
	p.mu.Unlock()
	if ok {
		cancel()
	}
	<-p.sem
}
