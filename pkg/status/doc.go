/*
Package status records what happened to each file a patch set touched.

	            +-------------+
	            |   Tracker   |
	            | (Outcomes)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Summary  |           | Console |
	|  (Counts) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Turns patch results and errors into Outcomes
- Keeps before and after checksums for every file
- Counts patched, would-patch, unchanged and failed files
- Renders outcomes for humans and for structured logs

🔄 Flow:
1. The operation runner finishes a job
2. FromResult converts the result or error into an Outcome
3. Tracker.Record stores it and logs it through zerolog
4. The CLI prints FormatOutcome lines and the Summary

🔍 Example:

	tracker := status.NewTracker()
	res, err := applier.Apply(ctx, req)
	tracker.Record(ctx, status.FromResult("controls", req.Path, res, err))

	if s := tracker.Summary(); !s.OK() {
		return errors.Errorf("%d files failed", s.Failed)
	}
*/
package status
