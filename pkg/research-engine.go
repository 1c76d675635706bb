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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type ResearchEngineConfig struct {
	// Datadir is the BadgerDB directory for query results. Empty selects the
	// in-memory store.
	Datadir string

	MaxInFlight int

	// Stage delays; zero values fall back to DefaultProcessorConfig.
	ValidateDelay  time.Duration
	AnonymizeDelay time.Duration
	AggregateDelay time.Duration
	FinalizeDelay  time.Duration

	DownloadBaseURL string
}

// ResearchEngineClient is the surface the API layer consumes.
type ResearchEngineClient interface {
	SubmitQuery(ctx context.Context, query ResearchQuery) (string, error)
	CancelQuery(queryID string) bool
	GetQueryStatus(queryID string) (*QueryStatus, error)
	GetQueryResult(queryID string) (*QueryResult, error)
	GetQueryResults(researcherID string) ([]QueryResult, error)
	UpdateConsent(update ConsentUpdate) (*ConsentRecord, error)
	GetPatientConsents(patientID string) ([]ConsentRecord, error)
	GetConsentHistory(patientID string, dataType string) ([]ConsentRecord, error)
	GetExpiringConsents(patientID string) ([]ConsentRecord, error)
}

// ResearchEngine bundles the ledger, store, validator and processor behind one
// lifecycle. Construct with NewResearchEngine or use the shared instance.
type ResearchEngine struct {
	Ledger    *ConsentLedger
	Store     QueryStore
	Validator *QueryValidator
	Processor *QueryProcessor
	Config    ResearchEngineConfig
}

var instance *ResearchEngine
var oneEngine sync.Once

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "research-engine")
}

// ResearchEngineInstance returns the process-wide engine used by the serve
// command. Tests construct their own engines with NewResearchEngine.
func ResearchEngineInstance() *ResearchEngine {
	oneEngine.Do(func() {
		instance = NewResearchEngine(ResearchEngineConfig{})
	})
	return instance
}

func NewResearchEngine(config ResearchEngineConfig) *ResearchEngine {
	return &ResearchEngine{Config: config}
}

func (re *ResearchEngine) Configure() error {
	return nil
}

// Start builds the store and the processor according to the configuration.
func (re *ResearchEngine) Start() error {
	if re.Ledger == nil {
		re.Ledger = NewConsentLedger()
	}
	if re.Validator == nil {
		re.Validator = NewQueryValidator()
	}
	if re.Store == nil {
		if re.Config.Datadir != "" {
			store, err := NewBadgerQueryStore(re.Config.Datadir)
			if err != nil {
				return err
			}
			re.Store = store
			logger().Infof("query store opened at %s", re.Config.Datadir)
		} else {
			re.Store = NewMemoryQueryStore()
			logger().Info("using in-memory query store")
		}
	}

	cfg := DefaultProcessorConfig()
	if re.Config.MaxInFlight > 0 {
		cfg.MaxInFlight = re.Config.MaxInFlight
	}
	if re.Config.ValidateDelay > 0 {
		cfg.ValidateDelay = re.Config.ValidateDelay
	}
	if re.Config.AnonymizeDelay > 0 {
		cfg.AnonymizeDelay = re.Config.AnonymizeDelay
	}
	if re.Config.AggregateDelay > 0 {
		cfg.AggregateDelay = re.Config.AggregateDelay
	}
	if re.Config.FinalizeDelay > 0 {
		cfg.FinalizeDelay = re.Config.FinalizeDelay
	}
	if re.Config.DownloadBaseURL != "" {
		cfg.DownloadBaseURL = re.Config.DownloadBaseURL
	}
	re.Processor = NewQueryProcessor(re.Store, re.Ledger, re.Validator, cfg)
	return nil
}

// Shutdown drains in-flight queries and releases the store.
func (re *ResearchEngine) Shutdown() error {
	if re.Processor != nil {
		re.Processor.Shutdown()
	}
	if re.Store != nil {
		return re.Store.Close()
	}
	return nil
}

// Diagnostics reports the engine's runtime shape for the status endpoint.
func (re *ResearchEngine) Diagnostics() string {
	inFlight := 0
	if re.Processor != nil {
		inFlight = re.Processor.InFlight()
	}
	return fmt.Sprintf("queries in flight: %d, known patients: %d", inFlight, re.Ledger.PatientCount())
}

func (re *ResearchEngine) SubmitQuery(ctx context.Context, query ResearchQuery) (string, error) {
	return re.Processor.SubmitQuery(ctx, query)
}

func (re *ResearchEngine) CancelQuery(queryID string) bool {
	return re.Processor.CancelQuery(queryID)
}

func (re *ResearchEngine) GetQueryStatus(queryID string) (*QueryStatus, error) {
	return re.Store.GetQueryStatus(queryID)
}

func (re *ResearchEngine) GetQueryResult(queryID string) (*QueryResult, error) {
	return re.Store.GetQueryResult(queryID)
}

func (re *ResearchEngine) GetQueryResults(researcherID string) ([]QueryResult, error) {
	return re.Store.GetQueryResults(researcherID)
}

func (re *ResearchEngine) UpdateConsent(update ConsentUpdate) (*ConsentRecord, error) {
	record, err := re.Ledger.UpdateConsent(update)
	if errors.Is(err, ErrVersionConflict) {
		metricConsentConflicts.Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	metricConsentUpdates.Inc()
	logger().Debugf("recorded consent version %d for patient %s", record.Version, record.PatientID)
	return record, nil
}

func (re *ResearchEngine) GetPatientConsents(patientID string) ([]ConsentRecord, error) {
	return re.Ledger.GetPatientConsents(patientID), nil
}

func (re *ResearchEngine) GetConsentHistory(patientID string, dataType string) ([]ConsentRecord, error) {
	return re.Ledger.GetConsentHistory(patientID, dataType), nil
}

func (re *ResearchEngine) GetExpiringConsents(patientID string) ([]ConsentRecord, error) {
	return re.Ledger.GetExpiringConsents(patientID), nil
}
