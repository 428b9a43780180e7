package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	workHours repository.WorkHourRepository
	teachers  repository.TeacherRepository
}

func NewReportHandler(workHours repository.WorkHourRepository, teachers repository.TeacherRepository) *ReportHandler {
	return &ReportHandler{workHours: workHours, teachers: teachers}
}

var csvHeader = []string{"teacher_document", "teacher_name", "date", "fixed_hours", "taught_hours", "lateness", "status"}

// ExportCSV streams the monthly work-hour report.
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	month := c.Query("month")
	year := c.Query("year")

	if month == "" || year == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month and year are required"})
	}
	if len(month) == 1 {
		month = "0" + month
	}

	list, err := h.workHours.GetAll(month, year, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load work-hours"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(csvHeader)
	for _, wh := range list {
		w.Write([]string{
			wh.Teacher.Document,
			wh.Teacher.Name,
			wh.Date,
			wh.FixedHours,
			wh.TaughtHours,
			wh.Lateness,
			wh.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="work-hours-%s-%s.csv"`, year, month))
	return c.Send(buf.Bytes())
}

// ImportCSV ingests a work-hour sheet. Rows reference teachers by
// document number; unknown teachers and malformed rows are reported
// back instead of aborting the whole upload.
func (h *ReportHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open upload"})
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty or unreadable CSV"})
	}

	var records []model.WorkHour
	var skipped []string
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, "line "+strconv.Itoa(line)+": unreadable row")
			continue
		}
		if len(row) < 5 {
			skipped = append(skipped, "line "+strconv.Itoa(line)+": expected at least 5 columns")
			continue
		}

		teacher, err := h.teachers.GetByDocument(row[0])
		if err != nil {
			skipped = append(skipped, "line "+strconv.Itoa(line)+": unknown teacher document "+row[0])
			continue
		}

		lateness := ""
		if len(row) > 5 {
			lateness = row[5]
		}
		records = append(records, model.WorkHour{
			TeacherID:   teacher.ID,
			Date:        row[2],
			FixedHours:  row[3],
			TaughtHours: row[4],
			Lateness:    lateness,
			Status:      model.StatusPending,
		})
	}

	if len(records) > 0 {
		if err := h.workHours.CreateMany(records); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store imported records"})
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Import finished",
		"imported": len(records),
		"skipped":  skipped,
	})
}
