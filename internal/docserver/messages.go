package docserver

import "fmt"

// Log message templates, reproduced verbatim per the external interface
// contract: their wording is part of the observable behavior under test,
// not incidental phrasing.
func formatLogHit(doc string) string {
	return fmt.Sprintf("has cache entry for `%s`", doc)
}

func formatLogMiss(doc string) string {
	return fmt.Sprintf("cache miss; fetched `%s` from local database", doc)
}

func formatLogEvict(doc, evictedKey string) string {
	return fmt.Sprintf("cache miss; evicted `%s` and fetched `%s` from local database", evictedKey, doc)
}

func formatLogFault(doc string) string {
	return fmt.Sprintf("document `%s` is neither in cache, nor in local database", doc)
}

func formatLogLazyExec(pending int) string {
	return fmt.Sprintf("task queue now has `%d` pending operations", pending)
}

// Response text templates.
func formatMsgA(op, doc string) string {
	return fmt.Sprintf("request to %s document `%s`", op, doc)
}

func formatMsgB(doc string) string {
	return fmt.Sprintf("document `%s` edited successfully", doc)
}

func formatMsgC(doc string) string {
	return fmt.Sprintf("document `%s` created", doc)
}

// RenderResponse renders resp using the fixed two-line host transcript
// template. It is used both for the log sink during drain and, by
// cmd/docstore, for the final transcript line of every request — the
// same rendering either way, since there is only one response format.
func RenderResponse(resp Response) string {
	return fmt.Sprintf("Server %d has received %s\nServer %d %s", resp.ServerID, resp.Text, resp.ServerID, resp.Log)
}
