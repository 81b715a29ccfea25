package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

// archivedParam reads ?archived=true, which includes archived entities in lists.
func archivedParam(c echo.Context) bool {
	v, _ := strconv.ParseBool(c.QueryParam("archived"))
	return v
}

func (s *Server) handleListGoals(c echo.Context) error {
	goals, err := s.svc.ListGoals(c.Request().Context(), archivedParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(c echo.Context) error {
	var in service.GoalInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	g, err := s.svc.CreateGoal(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(c echo.Context) error {
	var in service.GoalInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	g, err := s.svc.UpdateGoal(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

func (s *Server) handleArchiveGoal(archived bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		g, err := s.svc.SetGoalArchived(c.Request().Context(), c.Param("id"), archived)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, g)
	}
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.svc.ListProjects(c.Request().Context(), c.QueryParam("goalId"), archivedParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var in service.ProjectInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	p, err := s.svc.CreateProject(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var in service.ProjectInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	p, err := s.svc.UpdateProject(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleArchiveProject(archived bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := s.svc.SetProjectArchived(c.Request().Context(), c.Param("id"), archived)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	}
}

func (s *Server) handleListTopics(c echo.Context) error {
	topics, err := s.svc.ListTopics(c.Request().Context(), c.QueryParam("projectId"), archivedParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(c echo.Context) error {
	var in service.TopicInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	t, err := s.svc.CreateTopic(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTopic(c echo.Context) error {
	var in service.TopicInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	t, err := s.svc.UpdateTopic(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleArchiveTopic(archived bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := s.svc.SetTopicArchived(c.Request().Context(), c.Param("id"), archived)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, t)
	}
}

func (s *Server) handleTree(c echo.Context) error {
	tree, err := s.svc.Tree(c.Request().Context(), archivedParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tree)
}

// parseTimeParam accepts RFC 3339 timestamps or yyyy-mm-dd dates (UTC midnight).
func parseTimeParam(c echo.Context, name string) (time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return time.Time{}, badRequest("invalid %s: %s", name, v)
	}
	return d.Time(), nil
}

func (s *Server) handleListSessions(c echo.Context) error {
	from, err := parseTimeParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeParam(c, "to")
	if err != nil {
		return err
	}
	sessions, err := s.svc.ListSessions(c.Request().Context(), service.SessionFilter{
		From:    from,
		To:      to,
		Type:    model.SessionType(c.QueryParam("type")),
		TopicID: c.QueryParam("topicId"),
		GoalID:  c.QueryParam("goalId"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleGetSession(c echo.Context) error {
	sess, err := s.svc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var in service.SessionInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	sess, err := s.svc.CreateSession(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleUpdateSession(c echo.Context) error {
	var in service.SessionInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	sess, err := s.svc.UpdateSession(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	if err := s.svc.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListRecurring(c echo.Context) error {
	tasks, err := s.svc.ListRecurring(c.Request().Context(), archivedParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleUpcomingRecurring(c echo.Context) error {
	up, err := s.svc.UpcomingRecurring(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, up)
}

func (s *Server) handleCreateRecurring(c echo.Context) error {
	var in service.RecurringInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	r, err := s.svc.CreateRecurring(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) handleUpdateRecurring(c echo.Context) error {
	var in service.RecurringInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	r, err := s.svc.UpdateRecurring(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) handleArchiveRecurring(archived bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := s.svc.SetRecurringArchived(c.Request().Context(), c.Param("id"), archived)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, r)
	}
}

func (s *Server) handleListTemplates(c echo.Context) error {
	tpls, err := s.svc.ListTemplates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tpls)
}

func (s *Server) handleCreateTemplate(c echo.Context) error {
	var in service.TemplateInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	t, err := s.svc.CreateTemplate(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTemplate(c echo.Context) error {
	var in service.TemplateInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	t, err := s.svc.UpdateTemplate(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(c echo.Context) error {
	if err := s.svc.DeleteTemplate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
