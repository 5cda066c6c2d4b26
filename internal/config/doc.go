// Package config provides configuration parsing for linkroute.
//
// The configuration is stored in linkroute.json. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "manifest": "routes.json",
//	  "backtracking": false,
//	  "http": {
//	    "addr": ":8080"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "linkroute"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "linkroute"
//	  },
//	  "rateLimit": {
//	    "perSecond": 50,
//	    "burst": 100
//	  },
//	  "s3": {
//	    "region": "us-east-1",
//	    "endpoint": "http://localhost:9000"
//	  }
//	}
//
// A manifest location starting with "s3://" is fetched from S3; any other
// location is a file path relative to the config file.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.HTTP.Addr)
package config
