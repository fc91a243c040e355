// Package classroom holds the Classroom v1 quickstart.
package classroom

import (
	"context"
	"fmt"

	"google.golang.org/api/classroom/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Course is a Classroom course.
type Course struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ListCourses returns the first pageSize courses the user can see.
func ListCourses(ctx context.Context, svc *classroom.Service, pageSize int64) ([]Course, error) {
	resp, err := svc.Courses.List().PageSize(pageSize).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", google.WrapError(err))
	}
	courses := make([]Course, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		courses = append(courses, Course{ID: c.Id, Name: c.Name})
	}
	return courses, nil
}

// Register adds the Classroom samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "classroom.quickstart",
			API:     domain.APIClassroom,
			Summary: "List the first 10 courses you can access",
			Scopes:  []string{google.ScopeClassroomCoursesReadonly},
			Auth:    domain.AuthUser,
		},
		Run: func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
			svc, err := env.Clients.Classroom(ctx)
			if err != nil {
				return nil, err
			}
			return ListCourses(ctx, svc, 10)
		},
	})
}
