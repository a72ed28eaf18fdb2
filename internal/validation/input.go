package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/portfolio"
)

// Константы валидации
const (
	MinUsernameLength        = 3
	MaxUsernameLength        = 30
	MinProjectTitleLength    = 1
	MaxProjectTitleLength    = 200
	MaxDescriptionLength     = 5000
	MaxTechnologyLength      = 50
	MaxTechnologiesCount     = 30
	MaxQuickCreateImages     = 3
	MinProposalTitleLength   = 1
	MaxProposalTitleLength   = 200
	MaxBudgetItemDescription = 500
	MaxBudgetItemsCount      = 50
	MaxBudgetValue           = 100000000.0 // 100 миллионов
	MinColumns               = 1
	MaxColumns               = 4
	MaxLeadNameLength        = 100
	MaxLeadMessageLength     = 5000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя. Оно попадает в публичный URL портфолио.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateProjectTitle проверяет название проекта.
func ValidateProjectTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("название проекта обязательно")
	}

	return ValidateLength("название проекта", strings.TrimSpace(title), MinProjectTitleLength, MaxProjectTitleLength)
}

// ValidateDescription проверяет произвольное описание.
func ValidateDescription(fieldName, description string) error {
	return ValidateLength(fieldName, strings.TrimSpace(description), 0, MaxDescriptionLength)
}

// ValidateTechnologies проверяет список технологий проекта.
func ValidateTechnologies(technologies []string) error {
	if len(technologies) > MaxTechnologiesCount {
		return fmt.Errorf("количество технологий не может превышать %d", MaxTechnologiesCount)
	}

	seen := make(map[string]bool)
	for _, tech := range technologies {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			return fmt.Errorf("технология не может быть пустой")
		}
		if utf8.RuneCountInString(tech) > MaxTechnologyLength {
			return fmt.Errorf("технология не может быть длиннее %d символов", MaxTechnologyLength)
		}

		techLower := strings.ToLower(tech)
		if seen[techLower] {
			return fmt.Errorf("технология '%s' указана дважды", tech)
		}
		seen[techLower] = true
	}

	return nil
}

// ValidateQuickCreateImages проверяет лимит изображений при быстром создании проекта.
func ValidateQuickCreateImages(images []string) error {
	if len(images) > MaxQuickCreateImages {
		return fmt.Errorf("при быстром создании можно приложить не более %d изображений", MaxQuickCreateImages)
	}
	return nil
}

// ValidateVideoURL проверяет, что ссылка на видео распознаётся как YouTube или Vimeo.
func ValidateVideoURL(url *string) error {
	if url == nil || strings.TrimSpace(*url) == "" {
		return nil
	}
	if !portfolio.IsValidVideoURL(strings.TrimSpace(*url)) {
		return fmt.Errorf("поддерживаются только ссылки YouTube и Vimeo")
	}
	return nil
}

// ValidateProposalTitle проверяет название предложения.
func ValidateProposalTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("название предложения обязательно")
	}

	return ValidateLength("название предложения", strings.TrimSpace(title), MinProposalTitleLength, MaxProposalTitleLength)
}

// ValidateBudgetType проверяет тип бюджета предложения.
func ValidateBudgetType(budgetType string) error {
	for _, valid := range models.ValidBudgetTypes {
		if budgetType == valid {
			return nil
		}
	}
	return fmt.Errorf("некорректный тип бюджета '%s'", budgetType)
}

// ValidateBudgetItems проверяет строки сметы. Суммы пересчитываются сервером,
// здесь только границы входных значений.
func ValidateBudgetItems(items models.BudgetItems) error {
	if len(items) > MaxBudgetItemsCount {
		return fmt.Errorf("количество строк сметы не может превышать %d", MaxBudgetItemsCount)
	}

	for _, item := range items {
		if err := ValidateLength("описание строки сметы", item.Description, 0, MaxBudgetItemDescription); err != nil {
			return err
		}
		if item.Quantity < 0 {
			return fmt.Errorf("количество в строке сметы не может быть отрицательным")
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("цена в строке сметы не может быть отрицательной")
		}
		if item.Quantity*item.UnitPrice > MaxBudgetValue {
			return fmt.Errorf("сумма строки сметы не может превышать %.0f", MaxBudgetValue)
		}
	}

	return nil
}

// ValidateTemplate проверяет имя шаблона портфолио.
func ValidateTemplate(template string) error {
	for _, valid := range models.ValidTemplates {
		if template == valid {
			return nil
		}
	}
	return fmt.Errorf("некорректный шаблон '%s'", template)
}

// hexColorRegex — цвет в формате #RGB или #RRGGBB.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor проверяет основной цвет настроек.
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("цвет должен быть в формате #RRGGBB")
	}
	return nil
}

// ValidateColumns проверяет количество колонок сетки.
func ValidateColumns(columns int) error {
	if columns < MinColumns || columns > MaxColumns {
		return fmt.Errorf("количество колонок должно быть от %d до %d", MinColumns, MaxColumns)
	}
	return nil
}

// ValidateLeadName проверяет имя в контактной форме.
func ValidateLeadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("имя обязательно")
	}
	return ValidateLength("имя", strings.TrimSpace(name), 1, MaxLeadNameLength)
}

// ValidateLeadMessage проверяет сообщение в контактной форме.
func ValidateLeadMessage(message *string) error {
	if message == nil || *message == "" {
		return nil
	}
	return ValidateLength("сообщение", strings.TrimSpace(*message), 0, MaxLeadMessageLength)
}
