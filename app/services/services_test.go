package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/database"
	"github.com/gymstack/gymcore/pkg/event"
	"github.com/gymstack/gymcore/pkg/orm"
	"github.com/gymstack/gymcore/pkg/storage"
	"github.com/gymstack/gymcore/pkg/throttle"
)

type ServicesSuite struct {
	suite.Suite

	ctx      context.Context
	db       *gorm.DB
	verifier *auth.Verifier
	events   []event.Event

	gyms     *repositories.GymRepository
	members  *repositories.MemberRepository
	diets    *repositories.PlanRepository[models.DietPlan]
	workouts *repositories.PlanRepository[models.WorkoutPlan]

	auth        *AuthService
	memberSvc   *MemberService
	dietSvc     *PlanService[models.DietPlan, DietPlanInput]
	workoutSvc  *PlanService[models.WorkoutPlan, WorkoutPlanInput]
	admin       *AdminService
	gymSvc      *GymService
	exportsRoot string
}

func TestServices(t *testing.T) {
	suite.Run(t, new(ServicesSuite))
}

func (s *ServicesSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := database.Open("sqlite", ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.Gym{}, &models.DietPlan{}, &models.WorkoutPlan{}, &models.Member{}))
	s.db = db

	secret := []byte("services-test-secret")
	issuer, err := auth.NewIssuer(secret, time.Hour)
	s.Require().NoError(err)
	s.verifier, err = auth.NewVerifier(secret)
	s.Require().NoError(err)

	s.events = nil
	bus := event.NewBus()
	bus.ListenAll(func(_ context.Context, e event.Event) { s.events = append(s.events, e) })

	s.gyms = repositories.NewGymRepository(db)
	s.members = repositories.NewMemberRepository(db)
	s.diets = repositories.NewDietPlanRepository(db)
	s.workouts = repositories.NewWorkoutPlanRepository(db)

	s.exportsRoot = s.T().TempDir()
	disk, err := storage.NewLocalDisk(s.exportsRoot, "http://files.test")
	s.Require().NoError(err)

	limiter := throttle.New(throttle.NewMemoryStore(), 3, time.Minute)
	s.auth = NewAuthService(s.gyms, s.members, issuer, limiter, bus)
	s.memberSvc = NewMemberService(s.gyms, s.members, s.diets, s.workouts, bus)
	s.dietSvc = NewDietPlanService(s.diets, disk)
	s.workoutSvc = NewWorkoutPlanService(s.workouts, disk)
	s.admin = NewAdminService(s.gyms, s.members, bus)
	s.gymSvc = NewGymService(s.gyms)
}

func (s *ServicesSuite) TearDownTest() {
	database.Close(s.db)
}

func (s *ServicesSuite) register(email string) uint {
	res, err := s.auth.Register(s.ctx, RegisterInput{Name: "Gym " + email, OwnerName: "Owner", Email: email, Password: "pw123456"})
	s.Require().NoError(err)
	p, err := s.verifier.Verify(res.Token)
	s.Require().NoError(err)
	return p.(auth.GymPrincipal).ID
}

func (s *ServicesSuite) addMember(gymID uint, email string) models.Member {
	m, err := s.memberSvc.Create(s.ctx, gymID, CreateMemberInput{Name: "M " + email, Email: email, Password: "secret1"})
	s.Require().NoError(err)
	return m
}

func (s *ServicesSuite) addDiet(gymID uint, name string) models.DietPlan {
	p, err := s.dietSvc.Create(s.ctx, gymID, DietPlanInput{Name: name, Meals: []models.Meal{{Name: "Breakfast", Calories: 400}}})
	s.Require().NoError(err)
	return p
}

func (s *ServicesSuite) addWorkout(gymID uint, name string) models.WorkoutPlan {
	p, err := s.workoutSvc.Create(s.ctx, gymID, WorkoutPlanInput{Name: name})
	s.Require().NoError(err)
	return p
}

func id(v uint) NullableID { return NullableID{Set: true, ID: &v} }

func (s *ServicesSuite) TestRegisterIssuesGymToken() {
	res, err := s.auth.Register(s.ctx, RegisterInput{Name: "Iron", OwnerName: "Ann", Email: " G@X.com ", Password: "pw123456"})
	s.Require().NoError(err)

	s.Equal("gym", res.Role)
	s.Equal(AccountSummary{Name: "Iron", Email: "g@x.com"}, res.User)

	p, err := s.verifier.Verify(res.Token)
	s.Require().NoError(err)
	s.IsType(auth.GymPrincipal{}, p)
}

func (s *ServicesSuite) TestRegisterDuplicateEmail() {
	s.register("g@x.com")

	_, err := s.auth.Register(s.ctx, RegisterInput{Name: "Other", OwnerName: "O", Email: "G@x.com", Password: "pw123456"})
	s.ErrorIs(err, ErrEmailTaken)

	var n int64
	s.db.Model(&models.Gym{}).Where("email = ?", "g@x.com").Count(&n)
	s.Equal(int64(1), n)
}

func (s *ServicesSuite) TestRegisterRejectsMemberEmail() {
	gymID := s.register("g@x.com")
	s.addMember(gymID, "m@x.com")

	_, err := s.auth.Register(s.ctx, RegisterInput{Name: "Other", OwnerName: "O", Email: "m@x.com", Password: "pw123456"})
	s.ErrorIs(err, ErrEmailTaken)

	_, err = s.memberSvc.Create(s.ctx, gymID, CreateMemberInput{Name: "Dup", Email: "g@x.com", Password: "secret1"})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *ServicesSuite) TestLoginGymAndMember() {
	gymID := s.register("g@x.com")
	m := s.addMember(gymID, "m@x.com")

	res, err := s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "pw123456"})
	s.Require().NoError(err)
	s.Equal("gym", res.Role)
	p, err := s.verifier.Verify(res.Token)
	s.Require().NoError(err)
	s.Equal(auth.GymPrincipal{ID: gymID}, p)

	res, err = s.auth.Login(s.ctx, LoginInput{Email: "M@X.COM", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal("user", res.Role)
	p, err = s.verifier.Verify(res.Token)
	s.Require().NoError(err)
	s.Equal(auth.MemberPrincipal{ID: m.ID, GymID: gymID}, p)

	s.Require().NotEmpty(s.events)
	s.Equal(event.LoginSucceeded, s.events[len(s.events)-1].Name)
}

func (s *ServicesSuite) TestSuperAdminLogsInAsUser() {
	gymID := s.register("g@x.com")
	_, err := s.admin.CreateSuperAdmin(s.ctx, CreateAdminInput{GymID: gymID, Name: "Root", Email: "root@x.com", Password: "rootpw1"})
	s.Require().NoError(err)

	res, err := s.auth.Login(s.ctx, LoginInput{Email: "root@x.com", Password: "rootpw1"})
	s.Require().NoError(err)
	s.Equal("user", res.Role)
}

func (s *ServicesSuite) TestLoginFailuresAreUniform() {
	gymID := s.register("g@x.com")
	s.addMember(gymID, "m@x.com")

	_, err := s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = s.auth.Login(s.ctx, LoginInput{Email: "m@x.com", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = s.auth.Login(s.ctx, LoginInput{Email: "nobody@x.com", Password: "pw123456"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServicesSuite) TestGymEmailDoesNotFallThroughToMembers() {
	gymID := s.register("g@x.com")
	hash, err := auth.HashPassword("memberpw")
	s.Require().NoError(err)
	// Written straight to the store; the service would refuse the email.
	s.Require().NoError(s.db.Create(&models.Member{GymID: gymID, Name: "Shadow", Email: "g@x.com", Password: hash, Role: auth.RoleUser}).Error)

	_, err = s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "memberpw"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServicesSuite) TestLoginThrottle() {
	s.register("g@x.com")

	for i := 0; i < 3; i++ {
		_, err := s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "wrong"})
		s.ErrorIs(err, ErrInvalidCredentials)
	}
	_, err := s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "pw123456"})
	s.ErrorIs(err, ErrTooManyAttempts)
}

func (s *ServicesSuite) TestSuccessfulLoginResetsThrottle() {
	s.register("g@x.com")

	for i := 0; i < 2; i++ {
		s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "wrong"})
	}
	_, err := s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "pw123456"})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "wrong"})
	}
	_, err = s.auth.Login(s.ctx, LoginInput{Email: "g@x.com", Password: "pw123456"})
	s.NoError(err)
}

func (s *ServicesSuite) TestMembersAreTenantScoped() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")

	list, err := s.memberSvc.List(s.ctx, a)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)

	ma := s.addMember(a, "ma@x.com")
	mb := s.addMember(b, "mb@x.com")

	list, err = s.memberSvc.List(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(ma.ID, list[0].ID)

	_, err = s.memberSvc.Get(s.ctx, a, mb.ID)
	s.ErrorIs(err, ErrNotFound)

	name := "Hijack"
	_, err = s.memberSvc.Update(s.ctx, a, mb.ID, UpdateMemberInput{Name: &name})
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.memberSvc.Delete(s.ctx, a, mb.ID), ErrNotFound)

	still, err := s.memberSvc.Get(s.ctx, b, mb.ID)
	s.Require().NoError(err)
	s.Equal("M mb@x.com", still.Name)
}

func (s *ServicesSuite) TestMemberUpdateCannotMoveGym() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")
	m := s.addMember(a, "m@x.com")

	_, err := s.memberSvc.Update(s.ctx, a, m.ID, UpdateMemberInput{GymID: &b})
	s.ErrorIs(err, ErrCrossTenant)

	same := a
	name := "Renamed"
	got, err := s.memberSvc.Update(s.ctx, a, m.ID, UpdateMemberInput{GymID: &same, Name: &name})
	s.Require().NoError(err)
	s.Equal("Renamed", got.Name)
	s.Equal(a, got.GymID)
}

func (s *ServicesSuite) TestGymCannotEditOrDeleteSuperAdmin() {
	gymID := s.register("g@x.com")
	root, err := s.admin.CreateSuperAdmin(s.ctx, CreateAdminInput{GymID: gymID, Name: "Root", Email: "root@x.com", Password: "rootpw1"})
	s.Require().NoError(err)

	stolen := "stolen1"
	_, err = s.memberSvc.Update(s.ctx, gymID, root.ID, UpdateMemberInput{Password: &stolen})
	s.ErrorIs(err, ErrCrossTenant)
	_, err = s.auth.Login(s.ctx, LoginInput{Email: "root@x.com", Password: stolen})
	s.ErrorIs(err, ErrInvalidCredentials)

	demoted := auth.RoleUser
	_, err = s.memberSvc.Update(s.ctx, gymID, root.ID, UpdateMemberInput{Role: &demoted})
	s.ErrorIs(err, ErrCrossTenant)
	role, err := s.members.MemberRole(s.ctx, root.ID)
	s.Require().NoError(err)
	s.Equal(auth.RoleSuperAdmin, role)

	s.ErrorIs(s.memberSvc.Delete(s.ctx, gymID, root.ID), ErrCrossTenant)
	_, err = s.memberSvc.Get(s.ctx, gymID, root.ID)
	s.NoError(err)

	// The admin endpoint still manages the record.
	got, err := s.admin.SetRole(s.ctx, auth.MemberPrincipal{ID: root.ID}, root.ID, SetRoleInput{Role: auth.RoleUser})
	s.Require().NoError(err)
	s.Equal(auth.RoleUser, got.Role)
	s.NoError(s.memberSvc.Delete(s.ctx, gymID, root.ID))
}

func (s *ServicesSuite) TestOverlongMultibytePasswordIsValidation() {
	long := strings.Repeat("é", 40)

	_, err := s.auth.Register(s.ctx, RegisterInput{Name: "Gym", OwnerName: "Owner", Email: "g@x.com", Password: long})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "password")

	gymID := s.register("h@x.com")
	_, err = s.memberSvc.Create(s.ctx, gymID, CreateMemberInput{Name: "M", Email: "m@x.com", Password: long})
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "password")
}

func (s *ServicesSuite) TestAssignPlans() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")
	diet := s.addDiet(a, "Cut")
	workout := s.addWorkout(a, "Split")

	got, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(diet.ID), WorkoutPlan: id(workout.ID)})
	s.Require().NoError(err)
	s.Equal(diet.ID, *got.CurrentDietPlanID)
	s.Equal(workout.ID, *got.CurrentWorkoutPlanID)

	got, err = s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: NullableID{Set: true}})
	s.Require().NoError(err)
	s.Nil(got.CurrentDietPlanID)
	s.Require().NotNil(got.CurrentWorkoutPlanID)
	s.Equal(workout.ID, *got.CurrentWorkoutPlanID)

	s.Equal(event.PlansAssigned, s.events[len(s.events)-1].Name)
}

func (s *ServicesSuite) TestAssignPlansRejectsOtherGymsPlan() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")
	m := s.addMember(a, "m@x.com")
	own := s.addWorkout(a, "Own")
	foreign := s.addDiet(b, "Foreign")

	_, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(foreign.ID), WorkoutPlan: id(own.ID)})
	s.ErrorIs(err, ErrCrossTenant)

	stored, err := s.memberSvc.Get(s.ctx, a, m.ID)
	s.Require().NoError(err)
	s.Nil(stored.CurrentDietPlanID)
	s.Nil(stored.CurrentWorkoutPlanID)
}

func (s *ServicesSuite) TestAssignPlansChecksAndWritesInOneTransaction() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")
	diet := s.addDiet(a, "Cut")

	inTx := func(db *gorm.DB) bool {
		_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
		return ok
	}
	var ownerReads, memberWrites []bool
	s.Require().NoError(s.db.Callback().Query().After("gorm:query").Register("test:owner_read", func(db *gorm.DB) {
		if db.Statement.Table == "diet_plans" {
			ownerReads = append(ownerReads, inTx(db))
		}
	}))
	s.Require().NoError(s.db.Callback().Update().After("gorm:update").Register("test:member_write", func(db *gorm.DB) {
		if db.Statement.Table == "members" {
			memberWrites = append(memberWrites, inTx(db))
		}
	}))

	_, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(diet.ID)})
	s.Require().NoError(err)

	s.Equal([]bool{true}, ownerReads)
	s.Equal([]bool{true}, memberWrites)
}

func (s *ServicesSuite) TestAssignPlansUnknownPlan() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")

	_, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(999)})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("diet plan not found", verr.Fields["currentDietPlan"])
}

func (s *ServicesSuite) TestAssignPlansToOtherGymsMember() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")
	mb := s.addMember(b, "mb@x.com")
	diet := s.addDiet(a, "Cut")

	_, err := s.memberSvc.AssignPlans(s.ctx, a, mb.ID, PlanAssignment{DietPlan: id(diet.ID)})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServicesSuite) TestNullableIDDecoding() {
	var absent, null, set PlanAssignment
	s.Require().NoError(json.Unmarshal([]byte(`{}`), &absent))
	s.Require().NoError(json.Unmarshal([]byte(`{"currentDietPlan":null}`), &null))
	s.Require().NoError(json.Unmarshal([]byte(`{"currentDietPlan":7}`), &set))

	s.False(absent.DietPlan.Set)
	s.True(null.DietPlan.Set)
	s.Nil(null.DietPlan.ID)
	s.True(set.DietPlan.Set)
	s.Equal(uint(7), *set.DietPlan.ID)

	s.Error(json.Unmarshal([]byte(`{"currentDietPlan":"seven"}`), &set))
}

func (s *ServicesSuite) TestDeletePlanClearsAssignments() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")
	diet := s.addDiet(a, "Cut")
	_, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(diet.ID)})
	s.Require().NoError(err)

	s.Require().NoError(s.dietSvc.Delete(s.ctx, a, diet.ID))

	stored, err := s.memberSvc.Get(s.ctx, a, m.ID)
	s.Require().NoError(err)
	s.Nil(stored.CurrentDietPlanID)
}

func (s *ServicesSuite) TestPlansAreTenantScoped() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")
	foreign := s.addDiet(b, "Foreign")

	_, err := s.dietSvc.Get(s.ctx, a, foreign.ID)
	s.ErrorIs(err, ErrNotFound)
	_, err = s.dietSvc.Update(s.ctx, a, foreign.ID, DietPlanInput{Name: "Mine now"})
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.dietSvc.Delete(s.ctx, a, foreign.ID), ErrNotFound)

	_, err = s.dietSvc.Create(s.ctx, a, DietPlanInput{Name: "Sneaky", GymID: &b})
	s.ErrorIs(err, ErrCrossTenant)

	own := s.addDiet(a, "Own")
	_, err = s.dietSvc.Update(s.ctx, a, own.ID, DietPlanInput{Name: "Moved", GymID: &b})
	s.ErrorIs(err, ErrCrossTenant)

	list, err := s.dietSvc.List(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Own", list[0].Name)
}

func (s *ServicesSuite) TestPlanEntriesRoundTrip() {
	a := s.register("a@x.com")
	plan, err := s.workoutSvc.Create(s.ctx, a, WorkoutPlanInput{
		Name: "PPL",
		Days: []models.Day{{Day: "Mon", Focus: "Push", Exercises: []models.Exercise{{Name: "Bench", Sets: 4, Reps: "8"}}}},
	})
	s.Require().NoError(err)

	got, err := s.workoutSvc.Get(s.ctx, a, plan.ID)
	s.Require().NoError(err)
	var days []models.Day
	s.Require().NoError(json.Unmarshal(got.Days, &days))
	s.Require().Len(days, 1)
	s.Equal("Bench", days[0].Exercises[0].Name)

	empty := s.addWorkout(a, "Empty")
	s.JSONEq(`[]`, string(empty.Days))
}

func (s *ServicesSuite) TestExportPlan() {
	a := s.register("a@x.com")
	diet := s.addDiet(a, "Cut")
	s.dietSvc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }

	res, err := s.dietSvc.Export(s.ctx, a, diet.ID)
	s.Require().NoError(err)
	s.Contains(res.Path, "exports/gym-")
	s.Contains(res.Path, "diet-plan-")
	s.Contains(res.Path, "20260301T093000Z")
	s.Equal("http://files.test/"+res.Path, res.URL)

	b := s.register("b@x.com")
	_, err = s.dietSvc.Export(s.ctx, b, diet.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServicesSuite) TestMemberProfileAndPlans() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")
	diet := s.addDiet(a, "Cut")
	_, err := s.memberSvc.AssignPlans(s.ctx, a, m.ID, PlanAssignment{DietPlan: id(diet.ID)})
	s.Require().NoError(err)

	p := auth.MemberPrincipal{ID: m.ID, GymID: a}
	profile, err := s.memberSvc.Profile(s.ctx, p)
	s.Require().NoError(err)
	s.Equal("Gym a@x.com", profile.GymName)
	s.Equal(auth.RoleUser, profile.Role)

	plans, err := s.memberSvc.Plans(s.ctx, p)
	s.Require().NoError(err)
	s.Require().NotNil(plans.DietPlan)
	s.Equal("Cut", plans.DietPlan.Name)
	s.Nil(plans.WorkoutPlan)
}

func (s *ServicesSuite) TestGymProfileUpdate() {
	a := s.register("a@x.com")
	addr := "2 New Road"
	gym, err := s.gymSvc.UpdateProfile(s.ctx, a, UpdateGymInput{Address: &addr})
	s.Require().NoError(err)
	s.Equal("2 New Road", gym.Address)
	s.Equal("a@x.com", gym.Email)
}

func (s *ServicesSuite) TestAdminDeleteGymCascades() {
	a := s.register("a@x.com")
	b := s.register("b@x.com")
	s.addMember(a, "ma@x.com")
	s.addDiet(a, "Cut")
	s.addWorkout(a, "Split")
	mb := s.addMember(b, "mb@x.com")

	s.Require().NoError(s.admin.DeleteGym(s.ctx, auth.MemberPrincipal{ID: 1}, a))

	var n int64
	s.db.Model(&models.Member{}).Where("gym_id = ?", a).Count(&n)
	s.Zero(n)
	s.db.Model(&models.DietPlan{}).Where("gym_id = ?", a).Count(&n)
	s.Zero(n)
	s.db.Model(&models.WorkoutPlan{}).Where("gym_id = ?", a).Count(&n)
	s.Zero(n)

	_, err := s.memberSvc.Get(s.ctx, b, mb.ID)
	s.NoError(err)

	s.ErrorIs(s.admin.DeleteGym(s.ctx, auth.MemberPrincipal{ID: 1}, a), ErrNotFound)
}

func (s *ServicesSuite) TestAdminSetRoleAndVerify() {
	a := s.register("a@x.com")
	m := s.addMember(a, "m@x.com")

	got, err := s.admin.SetRole(s.ctx, auth.MemberPrincipal{ID: 99}, m.ID, SetRoleInput{Role: auth.RoleSuperAdmin})
	s.Require().NoError(err)
	s.Equal(auth.RoleSuperAdmin, got.Role)

	role, err := s.members.MemberRole(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(auth.RoleSuperAdmin, role)

	gym, err := s.admin.VerifyGym(s.ctx, a, VerifyInput{Verified: true})
	s.Require().NoError(err)
	s.True(gym.Verified)

	gyms, err := s.admin.ListGyms(s.ctx, orm.Page{})
	s.Require().NoError(err)
	s.Len(gyms, 1)
}
