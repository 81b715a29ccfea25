package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

type saveDayRequest struct {
	Tasks []model.PlannerTask `json:"tasks"`
}

type moveRequest struct {
	To string `json:"to"`
}

type moveResponse struct {
	From model.PlannerDay `json:"from"`
	To   model.PlannerDay `json:"to"`
}

func dateParam(c echo.Context, name string) (model.Date, error) {
	d, err := model.ParseDate(c.Param(name))
	if err != nil {
		return model.Date{}, badRequest("%v", err)
	}
	return d, nil
}

func (s *Server) handleGetToday(c echo.Context) error {
	day, err := s.svc.GetDay(c.Request().Context(), s.svc.Today())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, day)
}

func (s *Server) handleGetDay(c echo.Context) error {
	date, err := dateParam(c, "date")
	if err != nil {
		return err
	}
	day, err := s.svc.GetDay(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, day)
}

func (s *Server) handleSaveDay(c echo.Context) error {
	date, err := dateParam(c, "date")
	if err != nil {
		return err
	}
	var req saveDayRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	day, err := s.svc.SaveDay(c.Request().Context(), date, req.Tasks)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, day)
}

func (s *Server) handleApplyTemplate(c echo.Context) error {
	date, err := dateParam(c, "date")
	if err != nil {
		return err
	}
	replace, _ := strconv.ParseBool(c.QueryParam("replace"))
	day, err := s.svc.ApplyTemplate(c.Request().Context(), date, c.Param("templateId"), replace)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, day)
}

func (s *Server) handleMoveTask(c echo.Context) error {
	from, err := dateParam(c, "date")
	if err != nil {
		return err
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	to, err := model.ParseDate(req.To)
	if err != nil {
		return badRequest("%v", err)
	}
	src, dst, err := s.svc.MoveTask(c.Request().Context(), from, to, c.Param("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, moveResponse{From: src, To: dst})
}
