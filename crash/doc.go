// Package crash uploads tool crash reports.
//
// Reporting is opt-out and best-effort: deliberate tool exits, connectivity
// failures, bot environments, and user opt-out all suppress it, and a failed
// upload never interrupts the user. Uploads are multipart POSTs retried with
// doubling backoff on server errors.
package crash
