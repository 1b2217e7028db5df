// Package refresh triggers a rebuild of the reference index.
//
// Building the index is the CMS's job, so the refresher only runs the
// configured command (for TYPO3: "typo3 referenceindex:update") and reports
// whether it succeeded. Reconciliation continues on the current index when a
// refresh fails.
package refresh
