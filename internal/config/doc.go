// Package config provides configuration parsing for forge projects.
//
// The configuration is stored in forge.json at the project root.
// This package handles loading, saving, and validating configuration, and
// overlaying FORGE_* environment variables and command flags through viper.
//
// # Configuration File Structure
//
//	{
//	  "name": "storefront",
//	  "dev": true,
//	  "strictAlias": false,
//	  "maxNotifyDepth": 64,
//	  "document": "./index.html",
//	  "into": "main",
//	  "archetypes": ["./archetypes/cards.yaml"],
//	  "states": {
//	    "cart": {"count": 0}
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 4400,
//	    "watch": true,
//	    "metrics": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.PreviewURL())
package config
