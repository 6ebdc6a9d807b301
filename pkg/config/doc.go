/*
Package config loads the sof configuration.

	            +-------------+
	            |   Config    |
	            | wp / roles  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+   +----+---+ +---+----+
	| YAML | | JSON |   |  HCL   | |  .env  |
	+------+ +------+   | env.X  | | SOF_*  |
	                    +--------+ +--------+

🎯 Purpose:
- Tells the CLI how to reach wp-cli (binary, --path, --url, extra args)
- Lists the roles that role-delete is allowed to remove
- Narrows the enumerated sites with include/exclude globs
- Names the optional metrics textfile

🔄 Precedence (lowest to highest):
 1. Defaults
 2. Config file
 3. .env file
 4. Process environment (SOF_WP_BINARY, SOF_WP_PATH, SOF_WP_URL, SOF_METRICS_FILE)
 5. Command line flags (applied by the caller)

🔍 Example:

	env, err := config.ReadEnv(".env", false)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(ctx, ".sof.yaml", env)
	if err != nil {
		return err
	}

A YAML file:

	wp:
	  path: /var/www/html
	  url: https://spiritoffootball.com
	roles:
	  - sof_coach
	  - sof_volunteer
	sites:
	  exclude: ["https://archive.*"]

The same in HCL:

	wp {
	  path = env.WP_ROOT
	  url  = "https://spiritoffootball.com"
	}
	roles = ["sof_coach", "sof_volunteer"]
	sites {
	  exclude = ["https://archive.*"]
	}
*/
package config
