// Package sessions is the HTTP module for the session service.
//
// It exposes listing, creation, joining and cancellation as a JSON API. The
// caller identity is read from the X-Participant-ID header; the module does
// no authentication of its own and expects a trusted layer in front of it.
//
//	svc := session.NewService(session.WithStore(store))
//
//	r := chi.NewRouter()
//	r.Mount("/sessions", sessions.NewHandler(svc).Handle())
package sessions
