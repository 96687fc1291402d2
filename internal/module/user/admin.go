package user

import (
	"fmt"
	"io"
	"time"

	"techfest-backend/internal/global/response"
	"techfest-backend/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ListStudentsReq struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func ListStudents(c *gin.Context) {
	var req ListStudentsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	page, err := svc.ListStudents(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		log.Error("list students failed", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, "OK", gin.H{
		"students":  page.Students,
		"total":     page.Total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

type studentRow struct {
	ID        uint      `excel:"ID"`
	Name      string    `excel:"Name"`
	Email     string    `excel:"Email"`
	RollNo    string    `excel:"Roll Number"`
	College   string    `excel:"College"`
	CreatedAt time.Time `excel:"Registered At"`
}

func studentRows(accounts []*Account) []studentRow {
	rows := make([]studentRow, 0, len(accounts))
	for _, a := range accounts {
		s, _ := a.Profile.(Student)
		rows = append(rows, studentRow{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			RollNo:    s.RollNo,
			College:   s.College,
			CreatedAt: a.CreatedAt,
		})
	}
	return rows
}

// ExportStudents sends every registered student as an xlsx sheet.
func ExportStudents(c *gin.Context) {
	accounts, err := svc.AllStudents(c.Request.Context())
	if err != nil {
		log.Error("load students failed", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("close workbook failed", "error", err)
		}
	}()
	if err := tools.ExportToExcel(f, "Students", studentRows(accounts)); err != nil {
		log.Error("export excel failed", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if idx, err := f.GetSheetIndex("Students"); err == nil {
		f.SetActiveSheet(idx)
	}
	_ = f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("20060102"))
	err = tools.SendAttachment(c, filename, tools.ExcelContentType, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		log.Error("write export failed", "error", err)
		return
	}
	log.Info("students exported", "count", len(accounts))
}
