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
	"time"
)

// ConsentRecord is the current statement of whether a patient permits a dataType
// to be used for a researchCategory. Version starts at 1 and increments by exactly
// one on every accepted update of the same (patient, dataType, researchCategory)
// tuple. Records are never deleted; superseded versions are kept in the ledger's
// history log.
type ConsentRecord struct {
	ConsentID        string    `json:"consentId"`
	PatientID        string    `json:"patientId"`
	DataType         string    `json:"dataType"`
	ResearchCategory string    `json:"researchCategory"`
	ConsentGranted   bool      `json:"consentGranted"`
	ExpiryDate       time.Time `json:"expiryDate"`
	LastUpdated      time.Time `json:"lastUpdated"`
	Version          uint      `json:"version"`
}

// ConsentUpdate carries a consent decision for a single tuple. ExpectedVersion
// enables optimistic locking: when set, the update is rejected with
// ErrVersionConflict unless it matches the stored version.
type ConsentUpdate struct {
	PatientID        string    `json:"patientId"`
	DataType         string    `json:"dataType"`
	ResearchCategory string    `json:"researchCategory"`
	ConsentGranted   bool      `json:"consentGranted"`
	ExpiryDate       time.Time `json:"expiryDate"`
	ExpectedVersion  *uint     `json:"expectedVersion,omitempty"`
}

// Period defines component schema for Period.
type Period struct {
	End   *time.Time `json:"end,omitempty"`
	Start time.Time  `json:"start"`
}

// ResearchQuery is a researcher's request for a dataset. Structural requirements
// are expressed as validate tags; the ordered business rules live in QueryValidator.
type ResearchQuery struct {
	ResearcherID        string               `json:"researcherId" validate:"required"`
	StudyTitle          string               `json:"studyTitle" validate:"required"`
	StudyDescription    string               `json:"studyDescription" validate:"required"`
	DataRequirements    DataRequirements     `json:"dataRequirements"`
	InclusionCriteria   []string             `json:"inclusionCriteria,omitempty"`
	ExclusionCriteria   []string             `json:"exclusionCriteria,omitempty"`
	EthicalApprovalID   string               `json:"ethicalApprovalId" validate:"required"`
	PrivacyRequirements *PrivacyRequirements `json:"privacyRequirements,omitempty"`
}

type DataRequirements struct {
	DataTypes          []string `json:"dataTypes"`
	ResearchCategories []string `json:"researchCategories"`
	MinimumSampleSize  int      `json:"minimumSampleSize,omitempty"`
	DateRange          *Period  `json:"dateRange,omitempty"`
	DataRetentionDays  int      `json:"dataRetentionDays,omitempty"`
}

type PrivacyRequirements struct {
	AnonymizationMethods []string `json:"anonymizationMethods,omitempty"`
	MinimumKAnonymity    int      `json:"minimumKAnonymity,omitempty"`
}

// QueryState is the lifecycle state of a research query.
type QueryState string

const (
	StateSubmitted  QueryState = "submitted"
	StateValidating QueryState = "validating"
	StateProcessing QueryState = "processing"
	StateCompleted  QueryState = "completed"
	StateFailed     QueryState = "failed"
	StateCancelled  QueryState = "cancelled"
)

// Terminal returns true when no further transition is permitted from s.
func (s QueryState) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCancelled:
		return true
	}
	return false
}

// QueryStatus is the caller-visible progress view of a query.
type QueryStatus struct {
	QueryID                string     `json:"queryId"`
	Status                 QueryState `json:"status"`
	Progress               int        `json:"progress"`
	CurrentStep            string     `json:"currentStep"`
	EstimatedTimeRemaining string     `json:"estimatedTimeRemaining,omitempty"`
	LastUpdated            time.Time  `json:"lastUpdated"`
	ErrorMessage           string     `json:"errorMessage,omitempty"`
}

// LogEntry is one line of the append-only processing log.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

type PrivacyMetrics struct {
	KAnonymity          int     `json:"kAnonymity"`
	SuppressionRate     float64 `json:"suppressionRate"`
	GeneralizationLevel string  `json:"generalizationLevel"`
}

// DatasetSummary describes the dataset produced for a completed query. TotalRecords
// is derived from the consent ledger's eligible set, never synthesized.
type DatasetSummary struct {
	TotalRecords         int            `json:"totalRecords"`
	DataTypes            []string       `json:"dataTypes"`
	DateRange            *Period        `json:"dateRange,omitempty"`
	AnonymizationMethods []string       `json:"anonymizationMethods"`
	PrivacyMetrics       PrivacyMetrics `json:"privacyMetrics"`
}

// QueryResult is the full record of a query: status plus ownership, audit trail and,
// once completed, the dataset summary. Owned exclusively by the QueryProcessor via
// its QueryStore.
type QueryResult struct {
	QueryStatus
	ResearcherID   string          `json:"researcherId"`
	StudyTitle     string          `json:"studyTitle"`
	SubmittedAt    time.Time       `json:"submittedAt"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	DatasetSummary *DatasetSummary `json:"datasetSummary,omitempty"`
	ProcessingLog  []LogEntry      `json:"processingLog"`
	DownloadURL    string          `json:"downloadUrl,omitempty"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
	SummaryReport  string          `json:"summaryReport,omitempty"`
}

// QueryPatch is a partial update applied to a stored QueryResult. The processing
/// log is deliberately absent: it can only grow through QueryStore.AppendLogEntry.
type QueryPatch struct {
	Status                 *QueryState
	Progress               *int
	CurrentStep            *string
	EstimatedTimeRemaining *string
	ErrorMessage           *string
	CompletedAt            *time.Time
	DatasetSummary         *DatasetSummary
	DownloadURL            *string
	ExpiresAt              *time.Time
	SummaryReport          *string
}
