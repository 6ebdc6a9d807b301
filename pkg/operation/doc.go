/*
Package operation implements the network batch runner and its sub-operations.

	+-------------+      +-------------+
	| Enumerator  | ---> |   Runner    |
	|  (sites)    |      | (fan-out)   |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |  Operation  |
	                     | spam / role |
	                     +------+------+
	                            |
	                     +------+------+
	                     |  Executor   |
	                     |  (wp-cli)   |
	                     +-------------+

🎯 Purpose:
- Runs one Operation against the ambient site, or against every enumerated site
- Records one Result per (site, operation) and folds them into a Report
- Keeps going after a per-site failure; the Report carries the failure

🔄 Sub-operation lifecycle:

	PENDING -> LISTING -> EMPTY    -> DONE
	                   -> NONEMPTY -> DELETING -> DONE
	        (any step) -> FAILED

A listing failure never reaches DELETING. Role deletion always passes through
DELETING, even from EMPTY, because the role definition is removed regardless of
how many users held it.

🔒 Isolation:
A nil target means the ambient site. Any non-nil target produces invocations
flagged Isolated, so the executor must not share state with the caller or with
earlier sites. Spam deletion calls are always isolated.

🔍 Example:

	runner := operation.NewRunner(operation.Options{Logger: logger})
	sites, err := site.NewEnumerator(exec, site.Filter{}).List(ctx)
	report := runner.RunOnSites(ctx, sites,
		operation.NewSpamDelete(exec, operation.SpamComments, false),
		operation.NewSpamDelete(exec, operation.SpamFeedback, false),
	)
	if !report.Success() {
		return report.Err()
	}
*/
package operation
