package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iamvkosarev/prompt-form/pkg/local"
	"net/http"
)

var (
	textTitle = local.NewSet(
		"Ask ChatGPT a Question!",
		local.NewTrans(local.Rus, "Задайте вопрос ChatGPT!"),
	)
	textPlaceholder = local.NewSet(
		"Enter a prompt",
		local.NewTrans(local.Rus, "Введите запрос"),
	)
	textSubmitIdle = local.NewSet(
		"Submit Prompt",
		local.NewTrans(local.Rus, "Отправить запрос"),
	)
	textSubmitLoading = local.NewSet(
		"Loading...",
		local.NewTrans(local.Rus, "Загрузка..."),
	)
	textPoweredBy = local.NewSet(
		"Answers are generated by %s",
		local.NewTrans(local.Rus, "Ответы генерирует %s"),
	)
	textRequestFailed = local.NewSet(
		"Request failed. Please try again.",
		local.NewTrans(local.Rus, "Запрос не выполнен. Попробуйте ещё раз."),
	)
)

type PageHandler struct {
	endpoint string
	model    string
}

func NewPageHandler(endpoint, model string) *PageHandler {
	return &PageHandler{endpoint: endpoint, model: model}
}

func (h *PageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET(PathIndex, h.handleIndex)
}

func (h *PageHandler) handleIndex(c *gin.Context) {
	lang := local.FromAcceptLanguage(c.GetHeader("Accept-Language"))
	c.HTML(
		http.StatusOK, "index.html", gin.H{
			"Lang":          string(lang),
			"Endpoint":      h.endpoint,
			"Title":         textTitle.Text(lang),
			"Placeholder":   textPlaceholder.Text(lang),
			"SubmitIdle":    textSubmitIdle.Text(lang),
			"SubmitLoading": textSubmitLoading.Text(lang),
			"RequestFailed": textRequestFailed.Text(lang),
			"PoweredBy":     h.poweredBy(lang),
		},
	)
}

// poweredBy is empty when no model is configured.
func (h *PageHandler) poweredBy(lang local.Language) string {
	if h.model == "" {
		return ""
	}
	return textPoweredBy.Format(lang, h.model)
}
