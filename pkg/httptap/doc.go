// Package httptap adapts between net/http and the event pipeline.
//
// AppFromHandler lifts an ordinary http.Handler into an event.App so the
// middleware stages can wrap it; Handler lowers a (wrapped) App back onto
// net/http. Chain ties the two together, assembling the stages a
// config.Config enables:
//
//	chain, err := httptap.NewChain(cfg)
//	if err != nil { ... }
//	h, err := chain.Wrap(mux)
//	if err != nil { ... }
//	http.ListenAndServe(addr, h)
package httptap
