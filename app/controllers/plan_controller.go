package controllers

import (
	"net/http"

	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/response"
)

// PlanController serves the CRUD and export routes of one plan kind.
type PlanController[T repositories.Plan, In services.PlanInput[T]] struct {
	plans *services.PlanService[T, In]
}

func NewPlanController[T repositories.Plan, In services.PlanInput[T]](plans *services.PlanService[T, In]) *PlanController[T, In] {
	return &PlanController[T, In]{plans: plans}
}

func (c *PlanController[T, In]) Index(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	plans, err := c.plans.List(r.Context(), gid)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, plans)
}

func (c *PlanController[T, In]) Store(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	var in In
	if !decode(w, r, &in) {
		return
	}
	plan, err := c.plans.Create(r.Context(), gid, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, plan)
}

func (c *PlanController[T, In]) Show(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	plan, err := c.plans.Get(r.Context(), gid, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, plan)
}

func (c *PlanController[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in In
	if !decode(w, r, &in) {
		return
	}
	plan, err := c.plans.Update(r.Context(), gid, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, plan)
}

func (c *PlanController[T, In]) Destroy(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.plans.Delete(r.Context(), gid, id); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}

// Export handles POST /gym/<kind>/{id}/export.
func (c *PlanController[T, In]) Export(w http.ResponseWriter, r *http.Request) {
	gid, ok := gymID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := c.plans.Export(r.Context(), gid, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, res)
}
