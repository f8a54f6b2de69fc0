package services

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/models"
)

// CSVHeader is the first line of every export.
const CSVHeader = "ID,Title,Due Date,Status,Priority,Category"

// WriteTasksCSV writes tasks as comma-joined lines under CSVHeader. Fields are
// not quoted, so a comma inside a title shifts the remaining columns.
// TODO: switch to encoding/csv once existing spreadsheet imports accept quoted titles.
func WriteTasksCSV(w io.Writer, tasks []models.Task) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(CSVHeader + "\n"); err != nil {
		return err
	}

	for _, task := range tasks {
		row := strings.Join([]string{
			strconv.FormatUint(task.ID, 10),
			task.Title,
			task.DueDate.Format(constants.DateLayout),
			string(task.Status),
			string(task.Priority),
			string(task.Category),
		}, ",")
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
