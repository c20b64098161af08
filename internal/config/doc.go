// Package config provides configuration management for feedcli.
//
// # Configuration Sources
//
// Configuration is resolved in the following order, later sources winning:
//
//	1. Default() values
//	2. A YAML file (--config, or feedcli.yaml / configs/feedcli.yaml when present)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern FEED_<SECTION>_<KEY>:
//
//	FEED_LOGGING_LEVEL=debug
//	FEED_CLEAN_COMBINE_MEMBERS=true
//	FEED_VERIFY_COLUMNS=3,4,5
//	FEED_VALIDATE_KEY_COLUMN="File Name"
//	FEED_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/feedcli.prom
//
// # Usage
//
//	cfg, err := config.Load(configPath)
//	if err != nil {
//	    return err
//	}
package config
