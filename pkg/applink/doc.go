// Package applink decodes navigation URLs into routable requests.
//
// A Request carries the scheme and the normalized target path the router
// matches against, plus the App Link v1.0 metadata (extras, referer,
// version, user agent) found in the al_applink_data query parameter.
//
// # Normalization
//
// Everything after "scheme://" (or after "/" for schemeless URLs) is the
// path. The host of a custom-scheme URL is therefore the first path
// segment:
//
//	app://users/1/profile  → Scheme "app", Path "/users/1/profile"
//	/foo/                  → Scheme "",    Path "/foo"
//
// # Usage
//
//	req, err := applink.Parse("example://applinks?al_applink_data=...")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(req.Scheme, req.Path, req.Extras["myapp_token"])
package applink
