package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Testeur1337/myPomodoro/internal/backup"
	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
)

// HeaderPassphrase carries the passphrase of an encrypted export or import.
const HeaderPassphrase = "X-Backup-Passphrase"

func (s *Server) handleExport(c echo.Context) error {
	ds, err := s.svc.Export(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pomodoro-export.json"`)
	c.Response().WriteHeader(http.StatusOK)
	return backup.Encode(c.Response(), ds, c.Request().Header.Get(HeaderPassphrase))
}

func (s *Server) handleImport(c echo.Context) error {
	pass := c.Request().Header.Get(HeaderPassphrase)
	var source backup.PassphraseFunc
	if pass != "" {
		source = func() (string, error) { return pass, nil }
	}
	ds, err := backup.Decode(c.Request().Body, source)
	if err != nil {
		return err
	}
	rep, err := s.svc.Import(c.Request().Context(), ds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse(rep))
}

func (s *Server) handleRepair(c echo.Context) error {
	rep, err := s.svc.Repair(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse(rep))
}

type repairReport struct {
	Changed           bool     `json:"changed"`
	Created           []string `json:"created"`
	Adopted           []string `json:"adopted"`
	Restored          []string `json:"restored"`
	ReboundProjects   int      `json:"reboundProjects"`
	ReboundTopics     int      `json:"reboundTopics"`
	ReboundSessions   int      `json:"reboundSessions"`
	RewrittenSessions int      `json:"rewrittenSessions"`
}

func reportResponse(rep hierarchy.Report) repairReport {
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return repairReport{
		Changed:           rep.Changed(),
		Created:           orEmpty(rep.Created),
		Adopted:           orEmpty(rep.Adopted),
		Restored:          orEmpty(rep.Restored),
		ReboundProjects:   rep.ReboundProjects,
		ReboundTopics:     rep.ReboundTopics,
		ReboundSessions:   rep.ReboundSessions,
		RewrittenSessions: rep.RewrittenSessions,
	}
}
