package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Типы генерации текста.
const (
	PromptProfile               = "profile"
	PromptPortfolioStructure    = "portfolio-structure"
	PromptProjectNarrative      = "project-narrative"
	PromptProposalIntro         = "proposal-intro"
	PromptProposalJustification = "proposal-justification"
	PromptProposalClosing       = "proposal-closing"
)

// ErrUnknownPromptType возвращается для типа вне таблицы подсказок.
var ErrUnknownPromptType = errors.New("ai: неизвестный тип генерации")

// systemPrompts задаёт роль модели для каждого типа генерации.
// Тексты на португальском: продукт пишет контент для бразильских фрилансеров.
var systemPrompts = map[string]string{
	PromptProfile: `Você é um especialista em posicionamento profissional para criativos e designers.
Gere um perfil de posicionamento profissional conciso e impactante em português brasileiro.
O perfil deve ter entre 2-3 parágrafos, destacando:
- A proposta de valor única do profissional
- A experiência e especialização
- O diferencial competitivo
Use linguagem profissional mas acessível.`,

	PromptPortfolioStructure: `Você é um consultor de portfólios para profissionais criativos.
Com base nas informações fornecidas, sugira uma estrutura ideal para o portfólio em português brasileiro.
Inclua:
- Ordem recomendada de seções
- Tipos de projetos para destacar
- Dicas de apresentação
Seja específico e prático.`,

	PromptProjectNarrative: `Você é um copywriter especializado em case studies de design e projetos criativos.
Crie uma narrativa envolvente para o projeto em português brasileiro.
A narrativa deve:
- Conectar as etapas do projeto de forma fluida
- Destacar desafios e soluções
- Evidenciar resultados e impacto
- Ter entre 2-4 parágrafos
Use linguagem profissional e persuasiva.`,

	PromptProposalIntro: `Você é um especialista em propostas comerciais para serviços criativos.
Escreva uma introdução profissional e personalizada para uma proposta comercial em português brasileiro.
A introdução deve:
- Reconhecer as necessidades do cliente
- Apresentar brevemente o profissional/empresa
- Criar conexão e confiança
- Ter entre 1-2 parágrafos
Seja cordial mas profissional.`,

	PromptProposalJustification: `Você é um especialista em propostas comerciais para serviços criativos.
Escreva uma justificativa clara e convincente para os valores apresentados na proposta em português brasileiro.
A justificativa deve:
- Explicar o valor agregado dos serviços
- Destacar a experiência e qualidade
- Justificar o investimento
- Ter entre 1-2 parágrafos
Seja persuasivo mas honesto.`,

	PromptProposalClosing: `Você é um especialista em propostas comerciais para serviços criativos.
Escreva um fechamento profissional e motivador para uma proposta comercial em português brasileiro.
O fechamento deve:
- Resumir os benefícios principais
- Criar senso de oportunidade
- Incluir call-to-action claro
- Ter entre 1-2 parágrafos
Seja entusiasmado mas profissional.`,
}

// ValidPromptType сообщает, известен ли тип генерации.
func ValidPromptType(promptType string) bool {
	_, ok := systemPrompts[promptType]
	return ok
}

// BuildMessages собирает системную и пользовательскую реплики для типа генерации.
// Отсутствующие поля контекста заменяются нейтральными значениями по умолчанию.
func BuildMessages(promptType string, context map[string]any) ([]Message, error) {
	system, ok := systemPrompts[promptType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPromptType, promptType)
	}

	var user string
	switch promptType {
	case PromptProfile:
		user = fmt.Sprintf(`Gere um perfil de posicionamento profissional para:
Nome: %s
Área: %s
Nicho: %s
Nível de experiência: %s
Cliente ideal: %s
Objetivo do portfólio: %s`,
			field(context, "name", "Profissional"),
			field(context, "area", "Design"),
			field(context, "niche", "Generalista"),
			field(context, "experienceLevel", "Intermediário"),
			field(context, "idealClient", "Empresas e startups"),
			field(context, "portfolioObjective", "Atrair novos clientes"))

	case PromptPortfolioStructure:
		user = fmt.Sprintf(`Sugira uma estrutura de portfólio para:
Nome: %s
Área: %s
Nicho: %s
Número de projetos: %s
Objetivo: %s`,
			field(context, "name", "Profissional"),
			field(context, "area", "Design"),
			field(context, "niche", "Generalista"),
			field(context, "projectCount", "0"),
			field(context, "portfolioObjective", "Atrair novos clientes"))

	case PromptProjectNarrative:
		user = fmt.Sprintf(`Crie uma narrativa para o projeto:
Título: %s
Briefing: %s
Desafio: %s
Execução: %s
Resultado: %s
Tecnologias: %s`,
			field(context, "title", "Projeto"),
			field(context, "briefing", "Não informado"),
			field(context, "challenge", "Não informado"),
			field(context, "execution", "Não informado"),
			field(context, "result", "Não informado"),
			field(context, "technologies", "Não informado"))

	case PromptProposalIntro:
		user = fmt.Sprintf(`Escreva uma introdução para proposta:
Nome do cliente: %s
Nome do profissional: %s
Área de atuação: %s
Projetos incluídos: %s projeto(s)`,
			field(context, "clientName", "Cliente"),
			field(context, "professionalName", "Profissional"),
			field(context, "area", "Design"),
			field(context, "projectCount", "1"))

	case PromptProposalJustification:
		user = fmt.Sprintf(`Escreva uma justificativa para proposta:
Valor total: R$ %s
Tipo de orçamento: %s
Serviços incluídos: %s
Prazo estimado: %s`,
			field(context, "totalValue", "0,00"),
			field(context, "budgetType", "fixo"),
			field(context, "services", "Design e desenvolvimento"),
			field(context, "deadline", "A combinar"))

	case PromptProposalClosing:
		user = fmt.Sprintf(`Escreva um fechamento para proposta:
Nome do cliente: %s
Nome do profissional: %s
Próximos passos sugeridos: %s`,
			field(context, "clientName", "Cliente"),
			field(context, "professionalName", "Profissional"),
			field(context, "nextSteps", "Reunião de alinhamento"))
	}

	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, nil
}

// field приводит значение контекста к строке или возвращает значение по умолчанию.
// Контекст приходит из JSON, поэтому числа появляются как float64, а списки как []any.
func field(context map[string]any, key, def string) string {
	value, ok := context[key]
	if !ok || value == nil {
		return def
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case int:
		return strconv.Itoa(v)
	case []string:
		if len(v) == 0 {
			return def
		}
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return def
		}
		return strings.Join(parts, ", ")
	}

	return def
}
