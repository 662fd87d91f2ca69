package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Auth is the body returned by register and login.
type Auth struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type Gym struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Verified  bool   `json:"verified"`
}

type Member struct {
	ID                 uint      `json:"id"`
	GymID              uint      `json:"gymId"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Phone              string    `json:"phone"`
	JoinedAt           time.Time `json:"joinedAt"`
	CurrentDietPlan    *uint     `json:"currentDietPlan"`
	CurrentWorkoutPlan *uint     `json:"currentWorkoutPlan"`
}

// Plan covers both diet and workout plans; Meals or Days is set.
type Plan struct {
	ID          uint            `json:"id"`
	GymID       uint            `json:"gymId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Meals       json.RawMessage `json:"meals,omitempty"`
	Days        json.RawMessage `json:"days,omitempty"`
}

type RegisterRequest struct {
	Name      string `json:"name"`
	OwnerName string `json:"ownerName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

type MemberRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Assignment sets a member's current plans. A nil field clears that plan.
type Assignment struct {
	DietPlan    *uint `json:"currentDietPlan"`
	WorkoutPlan *uint `json:"currentWorkoutPlan"`
}

// call sends req and decodes a 2xx body into out. Non-2xx becomes *APIError.
func call(ctx context.Context, req *Request, out any) error {
	resp, err := req.Send(ctx)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil || len(resp.Raw) == 0 {
		return nil
	}
	return resp.JSON(out)
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (Auth, error) {
	var out Auth
	err := call(ctx, c.Post("/auth/register").Body(in), &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (Auth, error) {
	var out Auth
	err := call(ctx, c.Post("/auth/login").Body(map[string]string{"email": email, "password": password}), &out)
	return out, err
}

func (c *Client) GymProfile(ctx context.Context, token string) (Gym, error) {
	var out Gym
	err := call(ctx, c.Get("/gym/profile").Token(token), &out)
	return out, err
}

func (c *Client) Members(ctx context.Context, token string) ([]Member, error) {
	var out []Member
	err := call(ctx, c.Get("/gym/members").Token(token), &out)
	return out, err
}

func (c *Client) CreateMember(ctx context.Context, token string, in MemberRequest) (Member, error) {
	var out Member
	err := call(ctx, c.Post("/gym/members").Token(token).Body(in), &out)
	return out, err
}

func (c *Client) AssignPlans(ctx context.Context, token string, memberID uint, a Assignment) (Member, error) {
	var out Member
	err := call(ctx, c.Put(fmt.Sprintf("/gym/members/%d/plans", memberID)).Token(token).Body(a), &out)
	return out, err
}

// CreateDietPlan posts body as-is so callers control the meals payload.
func (c *Client) CreateDietPlan(ctx context.Context, token string, body any) (Plan, error) {
	var out Plan
	err := call(ctx, c.Post("/gym/diet-plans").Token(token).Body(body), &out)
	return out, err
}

func (c *Client) CreateWorkoutPlan(ctx context.Context, token string, body any) (Plan, error) {
	var out Plan
	err := call(ctx, c.Post("/gym/workout-plans").Token(token).Body(body), &out)
	return out, err
}

func (c *Client) Me(ctx context.Context, token string) (Member, error) {
	var out Member
	err := call(ctx, c.Get("/user/me").Token(token), &out)
	return out, err
}

func (c *Client) AdminGyms(ctx context.Context, token string) ([]Gym, error) {
	var out []Gym
	err := call(ctx, c.Get("/admin/gyms").Token(token), &out)
	return out, err
}
