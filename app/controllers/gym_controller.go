package controllers

import (
	"net/http"

	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/response"
)

// gymID returns the id of the gym principal. Routes using it are mounted
// behind rbac.GymOnly, so a missing principal is a wiring bug.
func gymID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	g, ok := auth.GymFromContext(r.Context())
	if !ok {
		response.Forbidden(w)
		return 0, false
	}
	return g.ID, true
}

// GymController serves /gym/profile and /gym/members.
type GymController struct {
	gyms    *services.GymService
	members *services.MemberService
}

func NewGymController(gyms *services.GymService, members *services.MemberService) *GymController {
	return &GymController{gyms: gyms, members: members}
}

func (c *GymController) Profile(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	gym, err := c.gyms.Profile(r.Context(), gid)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, gym)
}

func (c *GymController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	var in services.UpdateGymInput
	if !decode(w, r, &in) {
		return
	}
	gym, err := c.gyms.UpdateProfile(r.Context(), gid, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, gym)
}

func (c *GymController) ListMembers(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	members, err := c.members.List(r.Context(), gid)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, members)
}

func (c *GymController) CreateMember(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	var in services.CreateMemberInput
	if !decode(w, r, &in) {
		return
	}
	m, err := c.members.Create(r.Context(), gid, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, m)
}

func (c *GymController) ShowMember(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := c.members.Get(r.Context(), gid, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, m)
}

func (c *GymController) UpdateMember(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.UpdateMemberInput
	if !decode(w, r, &in) {
		return
	}
	m, err := c.members.Update(r.Context(), gid, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, m)
}

func (c *GymController) DeleteMember(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.members.Delete(r.Context(), gid, id); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}

// AssignPlans handles PUT /gym/members/{id}/plans.
func (c *GymController) AssignPlans(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.PlanAssignment
	if !decode(w, r, &in) {
		return
	}
	m, err := c.members.AssignPlans(r.Context(), gid, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, m)
}
