/*
Package config loads patch-set files for blockpatch.

	            +--------------+
	            |   Config     |
	            | (patch set)  |
	            +------+-------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Reads a list of named patches from one file
- Picks the parser by file extension
- Applies defaults and rejects incomplete patches
- Expands target globs relative to the set's root

🔄 Flow:
1. Load reads the file and selects a registered Parser
2. The parser decodes strictly (unknown fields are errors)
3. Validate fills defaults and resolves paths against the file's directory
4. ResolveTargets turns each patch's files into concrete paths

🔍 Example:

	cfg, err := config.Load(ctx, "patches.yaml")
	if err != nil {
		return err
	}

	for _, p := range cfg.Patches {
		targets, err := cfg.ResolveTargets(p)
		if err != nil {
			return err
		}
		// ...
	}
*/
package config
