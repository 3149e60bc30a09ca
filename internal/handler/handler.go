package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/config"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/repository"
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
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
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
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 排班时需要浏览同事信息，因此登录后即可读取
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/departments", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateDepartment)
			r.Get("/", h.GetAllDepartments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.department)
				r.Get("/", h.GetDepartment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateDepartment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteDepartment)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateTeam)
			r.Get("/", h.GetAllTeams)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.team)
				r.Get("/", h.GetTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteTeam)
			})
		})

		r.Route("/wards", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateWard)
			r.Get("/", h.GetAllWards)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.ward)
				r.Get("/", h.GetWard)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateWard)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteWard)
			})
		})

		r.Route("/shift-presets", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/", h.CreateShiftPreset)
			r.Get("/", h.GetAllShiftPresets)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftPreset)
				r.Get("/", h.GetShiftPreset)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Patch("/", h.UpdateShiftPreset)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Delete("/", h.DeleteShiftPreset)
			})
		})

		r.Route("/rota/{teamID}/{weekID}", func(r chi.Router) {
			r.Use(h.rotaScope)
			r.Get("/", h.GetRotaWeek)
			r.Get("/assigned-staff", h.GetRotaAssignedStaff)
			r.Group(func(r chi.Router) {
				r.Use(h.myInfo)
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler}))
				r.Put("/", h.SaveRotaWeek)
				r.Post("/publish", h.PublishRotaWeek)
				r.Post("/revert", h.RevertRotaWeek)
				r.Post("/copy-previous-week", h.CopyPreviousRotaWeek)
				r.Post("/clear", h.ClearRotaWeek)
			})
		})

		r.Route("/workload/{dateID}", func(r chi.Router) {
			r.Use(h.workloadScope)
			r.Get("/", h.GetWorkloadDay)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler}))
				r.Put("/", h.SaveWorkloadDay)
				r.Post("/copy-previous-day", h.CopyPreviousWorkloadDay)
				r.Post("/clear", h.ClearWorkloadDay)
			})
		})
	})
}
