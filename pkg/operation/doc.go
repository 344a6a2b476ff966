/*
Package operation turns a patch set into jobs and runs them.

	+-------------+
	|    Plan     |
	| (Patch set) |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (Per file)  |
	+------+------+

🎯 Purpose:
- Compiles each patch once and fans it out to its target files
- Runs different files in parallel and the same file in config order
- Records an Outcome for every job, success or failure

🔄 Flow:
1. Plan loads replacements, compiles patterns and resolves globs
2. Runner groups jobs by file
3. Groups run concurrently, bounded by the configured concurrency
4. A failed job never cancels its siblings; Run reports every failure at the end

🔍 Example:

	jobs, err := operation.Plan(ctx, cfg, patch.ModeWrite)
	if err != nil {
		return err
	}

	runner := operation.NewRunner(operation.WithConcurrency(cfg.Concurrency))
	outcomes, err := runner.Run(ctx, jobs)
*/
package operation
