// Package api exposes the dictionary query surface over HTTP.
//
// Every endpoint answers with the JSON envelope of dictionary.Result:
//
//	{"result": {...}, "status": {"success": true, "culture": "en-US", "scope": "global"}}
//
// Lookups that end without a translation are ordinary outcomes: they are
// answered with 200 and status.success set to false. Malformed requests get
// 400 and unknown table kinds 404, with the same envelope.
//
// Routes:
//
//	GET /translate?key=greeting&scope=checkout&culture=en-US
//	GET /translate/format?key=hello&param=Alice&param=3
//	GET /translate/plural?key=years&quantity=7
//	GET /translate/constant?key=currency
//	GET /dictionary/{kind}?scope=checkout&culture=en-US
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Mount("/v1", api.NewHandler(translator.Query(), api.WithLogger(log)).Routes())
package api
