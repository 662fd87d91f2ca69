// Package routes mounts every gymcore endpoint on the router.
package routes

import (
	"net/netip"
	"time"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/controllers"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/event"
	"github.com/gymstack/gymcore/pkg/middleware"
	"github.com/gymstack/gymcore/pkg/rbac"
	"github.com/gymstack/gymcore/pkg/router"
	"github.com/gymstack/gymcore/pkg/storage"
	"github.com/gymstack/gymcore/pkg/throttle"
)

// Deps is everything the API needs from the process. Limiter, Bus and Disk
// may be nil.
type Deps struct {
	DB         *gorm.DB
	Issuer     *auth.Issuer
	Verifier   *auth.Verifier
	AuthHeader string
	Limiter    *throttle.Limiter
	Bus        *event.Bus
	Disk       storage.Disk

	// TrustedProxies may set X-Forwarded-For for the per-IP rate limit.
	TrustedProxies []netip.Prefix
}

// RegisterAPI mounts the public, gym, user and admin route groups.
// The verifier runs before every gate and gates before handlers.
func RegisterAPI(r *router.Router, d Deps) {
	gyms := repositories.NewGymRepository(d.DB)
	members := repositories.NewMemberRepository(d.DB)
	diets := repositories.NewDietPlanRepository(d.DB)
	workouts := repositories.NewWorkoutPlanRepository(d.DB)

	authCtl := controllers.NewAuthController(services.NewAuthService(gyms, members, d.Issuer, d.Limiter, d.Bus))
	memberSvc := services.NewMemberService(gyms, members, diets, workouts, d.Bus)
	gymCtl := controllers.NewGymController(services.NewGymService(gyms), memberSvc)
	dietCtl := controllers.NewPlanController(services.NewDietPlanService(diets, d.Disk))
	workoutCtl := controllers.NewPlanController(services.NewWorkoutPlanService(workouts, d.Disk))
	userCtl := controllers.NewUserController(memberSvc)
	adminCtl := controllers.NewAdminController(services.NewAdminService(gyms, members, d.Bus))

	authn := middleware.Authenticate(d.Verifier, d.AuthHeader)

	public := r.Group("/auth", middleware.RateLimit(60, time.Minute, d.TrustedProxies))
	public.Post("/register", "auth.register", authCtl.Register)
	public.Post("/login", "auth.login", authCtl.Login)

	gym := r.Group("/gym", authn, rbac.GymOnly)
	gym.Get("/profile", "gym.profile", gymCtl.Profile)
	gym.Put("/profile", "gym.profile.update", gymCtl.UpdateProfile)
	gym.Get("/members", "gym.members.index", gymCtl.ListMembers)
	gym.Post("/members", "gym.members.store", gymCtl.CreateMember)
	gym.Get("/members/{id}", "gym.members.show", gymCtl.ShowMember)
	gym.Put("/members/{id}", "gym.members.update", gymCtl.UpdateMember)
	gym.Delete("/members/{id}", "gym.members.destroy", gymCtl.DeleteMember)
	gym.Put("/members/{id}/plans", "gym.members.plans", gymCtl.AssignPlans)

	diet := gym.Group("/diet-plans")
	diet.Get("/", "gym.diet-plans.index", dietCtl.Index)
	diet.Post("/", "gym.diet-plans.store", dietCtl.Store)
	diet.Get("/{id}", "gym.diet-plans.show", dietCtl.Show)
	diet.Put("/{id}", "gym.diet-plans.update", dietCtl.Update)
	diet.Delete("/{id}", "gym.diet-plans.destroy", dietCtl.Destroy)
	diet.Post("/{id}/export", "gym.diet-plans.export", dietCtl.Export)

	workout := gym.Group("/workout-plans")
	workout.Get("/", "gym.workout-plans.index", workoutCtl.Index)
	workout.Post("/", "gym.workout-plans.store", workoutCtl.Store)
	workout.Get("/{id}", "gym.workout-plans.show", workoutCtl.Show)
	workout.Put("/{id}", "gym.workout-plans.update", workoutCtl.Update)
	workout.Delete("/{id}", "gym.workout-plans.destroy", workoutCtl.Destroy)
	workout.Post("/{id}/export", "gym.workout-plans.export", workoutCtl.Export)

	user := r.Group("/user", authn, rbac.UserOnly)
	user.Get("/me", "user.me", userCtl.Me)
	user.Get("/plans", "user.plans", userCtl.Plans)

	admin := r.Group("/admin", authn, rbac.SuperAdminOnly(members))
	admin.Get("/gyms", "admin.gyms.index", adminCtl.Gyms)
	admin.Delete("/gyms/{id}", "admin.gyms.destroy", adminCtl.DeleteGym)
	admin.Patch("/gyms/{id}/verify", "admin.gyms.verify", adminCtl.VerifyGym)
	admin.Get("/members", "admin.members.index", adminCtl.Members)
	admin.Patch("/members/{id}/role", "admin.members.role", adminCtl.SetRole)
}

