package license

import (
	"license-sync/core/reconcile"
	"license-sync/feature/directory"
	"license-sync/feature/license/models"
)

// Enrich attaches directory URLs to every record whose customer name resolves.
// The result has the same length and order as records; unmatched records are
// returned unchanged and the inputs are never modified.
func Enrich(records []models.LicenseRecord, clients []directory.Client) ([]models.LicenseRecord, reconcile.MatchStats) {
	ix := reconcile.BuildIndex(clients, directory.ClientName)
	stats := reconcile.NewMatchStats(reconcile.EnrichSampleSize)

	out := make([]models.LicenseRecord, len(records))
	for i, r := range records {
		client, ok := ix.Resolve(r.CustomerName)
		if !ok {
			stats.Miss(r.CustomerName)
			out[i] = r
			continue
		}

		stats.Hit()
		out[i] = r.WithURLs(client.URLs())
	}
	return out, stats
}
