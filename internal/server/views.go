package server

import (
	"github.com/gin-gonic/gin"

	"kanmind/internal/models"
	"kanmind/internal/storage/sqlite"
)

// View shaping lives here: one domain model, one explicit response shape
// per endpoint. Field names follow the client contract, which is why tasks
// expose "description" for the details column and comments render the
// author as a display name.

func userView(u models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"fullname": u.FullName(),
	}
}

func boardListView(b models.Board, st sqlite.BoardStats) gin.H {
	return gin.H{
		"id":                    b.ID,
		"title":                 b.Title,
		"description":           b.Description,
		"owner_id":              b.Owner.ID,
		"member_count":          len(b.Members),
		"ticket_count":          st.TicketCount,
		"tasks_to_do_count":     st.ToDoCount,
		"tasks_high_prio_count": st.HighPrioCount,
	}
}

func boardDetailView(b models.Board, tasks []models.Task) gin.H {
	members := make([]gin.H, 0, len(b.Members))
	for _, m := range b.Members {
		members = append(members, userView(m))
	}
	taskViews := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		taskViews = append(taskViews, taskView(t))
	}
	return gin.H{
		"id":          b.ID,
		"title":       b.Title,
		"description": b.Description,
		"owner_id":    b.Owner.ID,
		"members":     members,
		"tasks":       taskViews,
	}
}

func taskView(t models.Task) gin.H {
	var assignee, reviewer any
	if t.Assigned != nil {
		assignee = userView(*t.Assigned)
	}
	if t.Reviewer != nil {
		reviewer = userView(*t.Reviewer)
	}
	var dueDate any
	if t.DueDate != nil {
		dueDate = t.DueDate.Format("2006-01-02")
	}
	return gin.H{
		"id":             t.ID,
		"title":          t.Title,
		"description":    t.Details,
		"board":          t.Board.ID,
		"due_date":       dueDate,
		"assignee":       assignee,
		"reviewer":       reviewer,
		"status":         string(t.Status),
		"priority":       string(t.Priority),
		"comments_count": t.CommentsCount,
	}
}

func taskListView(tasks []models.Task) []gin.H {
	views := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}
	return views
}

func commentView(c models.Comment) gin.H {
	return gin.H{
		"id":         c.ID,
		"content":    c.Content,
		"task":       c.TaskID,
		"author":     c.Author.FullName(),
		"created_at": c.CreatedAt,
		"board":      c.Board.ID,
	}
}

func dashboardView(d models.Dashboard) gin.H {
	return gin.H{
		"id":    d.ID,
		"title": d.Title,
		"user":  d.User.ID,
	}
}
