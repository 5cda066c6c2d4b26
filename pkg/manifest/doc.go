// Package manifest loads route tables declared as JSON and applies them
// to a router.
//
// A manifest maps routes to handler names:
//
//	{
//	  "routes": [
//	    {"route": "app://users/:id", "handler": "profile"},
//	    {"route": "/settings", "handler": "settings"}
//	  ]
//	}
//
// Manifests are read from a local file or an S3 object:
//
//	src, err := manifest.Open("s3://config-bucket/routes.json", s3Client)
//	m, err := manifest.Load(ctx, src)
//	err = m.Apply(r, map[string]router.Handler{"profile": profile, "settings": settings})
package manifest
