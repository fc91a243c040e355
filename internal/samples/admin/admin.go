package admin

import (
	"context"
	"fmt"

	directory "google.golang.org/api/admin/directory/v1"
	reports "google.golang.org/api/admin/reports/v1"
	"google.golang.org/api/reseller/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// User is a directory user.
type User struct {
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
}

// ListUsers returns the first maxResults users of the domain sorted by email.
func ListUsers(ctx context.Context, svc *directory.Service, maxResults int64) ([]User, error) {
	resp, err := svc.Users.List().
		Customer("my_customer").
		MaxResults(maxResults).
		OrderBy("email").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", google.WrapError(err))
	}

	users := make([]User, 0, len(resp.Users))
	for _, u := range resp.Users {
		user := User{Email: u.PrimaryEmail}
		if u.Name != nil {
			user.Name = u.Name.FullName
		}
		users = append(users, user)
	}
	return users, nil
}

// LoginActivity is one login audit event.
type LoginActivity struct {
	Time  string `json:"time" yaml:"time"`
	Email string `json:"email" yaml:"email"`
	Event string `json:"event" yaml:"event"`
}

// ListLoginActivities returns the last maxResults login events of all users.
func ListLoginActivities(ctx context.Context, svc *reports.Service, maxResults int64) ([]LoginActivity, error) {
	resp, err := svc.Activities.List("all", "login").MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list login activities: %w", google.WrapError(err))
	}

	activities := make([]LoginActivity, 0, len(resp.Items))
	for _, a := range resp.Items {
		var act LoginActivity
		if a.Id != nil {
			act.Time = a.Id.Time
		}
		if a.Actor != nil {
			act.Email = a.Actor.Email
		}
		if len(a.Events) > 0 {
			act.Event = a.Events[0].Name
		}
		activities = append(activities, act)
	}
	return activities, nil
}

// Subscription is a reseller subscription.
type Subscription struct {
	CustomerID string `json:"customerId" yaml:"customerId"`
	SkuID      string `json:"skuId" yaml:"skuId"`
	Plan       string `json:"plan" yaml:"plan"`
}

// ListSubscriptions returns the first maxResults reseller subscriptions.
func ListSubscriptions(ctx context.Context, svc *reseller.Service, maxResults int64) ([]Subscription, error) {
	resp, err := svc.Subscriptions.List().MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", google.WrapError(err))
	}

	subs := make([]Subscription, 0, len(resp.Subscriptions))
	for _, s := range resp.Subscriptions {
		sub := Subscription{CustomerID: s.CustomerId, SkuID: s.SkuId}
		if s.Plan != nil {
			sub.Plan = s.Plan.PlanName
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
