// Package zephyr provides a client for the Zephyr test-management API
// (ZAPI, the /rest/zapi/latest surface).
//
// Usage:
//
//	client, err := zephyr.New(zephyr.Config{BaseURL: url, AccessKey: key}, zephyr.WithTimeout(30*time.Second))
//	projects, err := client.ListProjects(ctx)
//	cycles, err := client.ListCycles(ctx, "10200", "10305")
//	execs, err := client.ListExecutions(ctx, "10200", "10305", cycleID)
//
// The ZAPI is loose about encodings: collections arrive as arrays or as
// objects keyed by record ID, and identifiers arrive as numbers or strings
// depending on the deployment. All of that is absorbed at decode time so
// callers only ever see normalized resources.
package zephyr
