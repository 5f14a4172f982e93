package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/gestione-turni/backend/internal/config"
	"github.com/gestione-turni/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// downloads carry the token in the query string instead of the cookie,
	// so browsers can open them in a new tab
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.authFromQuery)
		r.With(h.week).Get("/weeks/{monday}/export.pdf", h.ExportWeekPDF)
		r.With(h.week).Get("/weeks/{monday}/export.xlsx", h.ExportWeekXLSX)
	})

	// everything below requires a logged-in operator
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
		})

		r.Route("/people", func(r chi.Router) {
			r.Post("/", h.CreatePerson)
			r.Get("/", h.GetAllPeople)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.person)
				r.Get("/", h.GetPerson)
				r.Patch("/", h.UpdatePerson)
				r.Delete("/", h.DeletePerson)
				r.Put("/rotation", h.SetPersonRotation)
				r.Get("/rotation.ics", h.GetPersonRotationICS)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Get("/", h.GetAllShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.Get("/", h.GetShift)
				r.Patch("/", h.UpdateShift)
				r.Delete("/", h.DeleteShift)
			})
		})

		r.Route("/absences", func(r chi.Router) {
			r.Post("/", h.CreateAbsence)
			r.Get("/", h.GetAllAbsences)
			r.Delete("/{id}", h.DeleteAbsence)
		})

		r.Route("/weeks/{monday}", func(r chi.Router) {
			r.Use(h.week)
			r.Get("/plan", h.GetWeeklyPlan)
			r.Get("/absences", h.GetWeekAbsences)
			r.Get("/meta", h.GetWeekMeta)
			r.Put("/cell", h.SetCell)
			r.Post("/clear", h.ClearWeek)
			r.Post("/copy", h.CopyWeek)
		})
	})
}
