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
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
)

// datasetExpiry is how long a completed dataset stays downloadable.
const datasetExpiry = 30 * 24 * time.Hour

const summaryReportTemplate = `Dataset summary for study "{{studyTitle}}"
Query: {{queryId}}
Completed: {{completedAt}}

Records released: {{totalRecords}} (from {{knownPatients}} known patients)
Data types: {{dataTypes}}
Anonymization: {{anonymizationMethods}}
Privacy: k-anonymity {{kAnonymity}}, suppression rate {{suppressionRate}}, generalization {{generalizationLevel}}

Download: {{downloadUrl}}
Available until: {{expiresAt}}
`

// stageFinalizeSummary derives the dataset summary from the eligible set computed
// by the aggregation stage, renders the human-readable report and stamps the
// download window.
func (p *QueryProcessor) stageFinalizeSummary(run *queryRun) (string, error) {
	totalRecords := len(run.eligible)
	run.completedAt = p.now()
	run.expiresAt = run.completedAt.Add(datasetExpiry)
	run.downloadURL = fmt.Sprintf("%s/%s", strings.TrimRight(p.cfg.DownloadBaseURL, "/"), run.queryID)

	metrics := PrivacyMetrics{
		KAnonymity:          kAnonymityFor(totalRecords, p.cfg.KAnonymityFloor),
		SuppressionRate:     suppressionRateFor(totalRecords, run.knownPatients),
		GeneralizationLevel: generalizationLevelFor(len(run.query.DataRequirements.DataTypes)),
	}
	run.summary = &DatasetSummary{
		TotalRecords:         totalRecords,
		DataTypes:            append([]string{}, run.query.DataRequirements.DataTypes...),
		DateRange:            run.query.DataRequirements.DateRange,
		AnonymizationMethods: run.methods,
		PrivacyMetrics:       metrics,
	}

	report, err := mustache.Render(summaryReportTemplate, map[string]interface{}{
		"studyTitle":           run.query.StudyTitle,
		"queryId":              run.queryID,
		"completedAt":          run.completedAt.Format(time.RFC3339),
		"totalRecords":         fmt.Sprintf("%d", totalRecords),
		"knownPatients":        fmt.Sprintf("%d", run.knownPatients),
		"dataTypes":            strings.Join(run.summary.DataTypes, ", "),
		"anonymizationMethods": strings.Join(run.methods, ", "),
		"kAnonymity":           fmt.Sprintf("%d", metrics.KAnonymity),
		"suppressionRate":      fmt.Sprintf("%.2f", metrics.SuppressionRate),
		"generalizationLevel":  metrics.GeneralizationLevel,
		"downloadUrl":          run.downloadURL,
		"expiresAt":            run.expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("could not render dataset summary report: %w", err)
	}
	run.report = report

	return fmt.Sprintf("Finalized dataset of %d record(s), available until %s",
		totalRecords, run.expiresAt.Format(time.RFC3339)), nil
}

// kAnonymityFor caps the advertised k at the dataset size: a dataset of two
// records can never promise 5-anonymity.
func kAnonymityFor(totalRecords, floor int) int {
	if totalRecords == 0 {
		return 0
	}
	if totalRecords < floor {
		return totalRecords
	}
	return floor
}

// suppressionRateFor is the share of known patients excluded for missing or
// expired consent, rounded to two decimals.
func suppressionRateFor(totalRecords, knownPatients int) float64 {
	if knownPatients == 0 {
		return 0
	}
	rate := 1 - float64(totalRecords)/float64(knownPatients)
	return math.Round(rate*100) / 100
}

func generalizationLevelFor(dataTypes int) string {
	switch {
	case dataTypes <= 1:
		return "low"
	case dataTypes <= 3:
		return "moderate"
	default:
		return "high"
	}
}
