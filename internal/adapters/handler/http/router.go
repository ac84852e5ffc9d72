package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler assembles the API routes. Auth endpoints are public; the poll
// surface requires a valid access token.
func NewHandler(authHandler *AuthHandler, pollHandler *PollHandler, voteHandler *VoteHandler, userHandler *UserHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Get("/me", userHandler.GetMe)

			r.Route("/polls", func(r chi.Router) {
				r.Get("/active", pollHandler.GetActivePolls)
				r.Get("/closed", pollHandler.GetClosedPolls)
				r.Get("/user", pollHandler.GetUserPolls)
				r.Post("/", pollHandler.CreatePoll)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", pollHandler.GetPoll)
					r.Post("/votes", voteHandler.CastVote)
					r.Get("/my-vote", voteHandler.GetMyVote)
					r.Get("/results", voteHandler.GetResults)
					r.Get("/voters", voteHandler.GetVoters)
				})
			})
		})
	})

	return r
}
