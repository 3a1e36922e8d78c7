package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/callbacks"
	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
)

// showCourses renders the active course list. edit replaces the message
// the callback came from; otherwise a fresh message is sent.
func (a *App) showCourses(c tele.Context, loc domain.Locale, edit bool) error {
	ctx := helpers.BuildContext(c)

	courses, err := a.catalog.Courses(ctx)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	if len(courses) == 0 {
		text := i18n.Text("no_courses_yet", loc)
		if edit {
			return helpers.EditHTML(c, text)
		}
		return helpers.SendText(c, text)
	}

	if err := a.sessions.SetState(ctx, c.Chat().ID, StateCourseSelection); err != nil {
		return err
	}

	text := i18n.Text("courses_list_title", loc)
	markup := courseListMarkup(loc, courses)
	if edit {
		return helpers.EditOrSendHTML(c, text, markup)
	}
	return helpers.SendHTML(c, text, markup)
}

// handleCourse shows the details card for one course.
func (a *App) handleCourse(c tele.Context) error {
	ctx := helpers.WithHandler(c, "course")
	loc := a.localeOf(ctx, c)

	courseID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.SendText(c, i18n.Text("error_loading_course_details", loc))
	}

	det, err := a.catalog.CourseDetails(ctx, courseID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}

	chatID := c.Chat().ID
	if err := a.sessions.SetState(ctx, chatID, StateCourseDetails); err != nil {
		return err
	}
	_ = a.setScratchInt64(ctx, chatID, dataCourseID, courseID)

	return helpers.EditOrSendHTML(c, courseDetailsText(loc, det), courseDetailsMarkup(loc, det))
}

func (a *App) handleBackToCourses(c tele.Context) error {
	ctx := helpers.WithHandler(c, "back_to_courses")
	loc := a.localeOf(ctx, c)
	return a.showCourses(c, loc, true)
}

func (a *App) handleBackToMenu(c tele.Context) error {
	ctx := helpers.WithHandler(c, "back_to_menu")
	loc := a.localeOf(ctx, c)
	_ = c.Delete()
	return a.showMainMenu(c, loc)
}

// showInfoPage renders a static page ("about", "support") in the user's
// language, with a per-page missing-content message.
func (a *App) showInfoPage(c tele.Context, loc domain.Locale, key, missingKey string) error {
	ctx := helpers.BuildContext(c)

	content, err := a.catalog.InfoPage(ctx, key)
	if err != nil {
		return helpers.SendText(c, i18n.Text(missingKey, loc))
	}
	text := content.In(loc)
	if text == "" {
		return helpers.SendText(c, i18n.Text(missingKey, loc))
	}
	return helpers.SendHTML(c, text)
}
