package tools

import (
	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

// Definitions builds the tool schemas advertised to the model. The
// personal set is available everywhere; group scope gets the superset
// with the group-only tools appended.
type Definitions struct {
	personal []llm.ToolDef
	group    []llm.ToolDef
}

// NewDefinitions binds the schemas to the category/source catalogue so
// the enum values always match what the reports render.
func NewDefinitions(cat *catalog.Catalog) *Definitions {
	categories := cat.ExpenseCategories()
	sources := cat.IncomeSources()

	personal := []llm.ToolDef{
		{
			Name:        "add_expense",
			Description: "Registra uma nova despesa. Em grupos, use member_name para registrar para outro membro.",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da despesa (ex: almoço, uber, mercado)"},
				"amount":      {Type: "number", Description: "Valor da despesa em reais"},
				"category":    {Type: "string", Description: "Categoria da despesa", Enum: categories},
				"paid":        {Type: "boolean", Description: "Se a despesa já foi paga (opcional, default: false)"},
				"member_name": {Type: "string", Description: "Nome do membro do grupo para quem registrar (opcional, só em grupos)"},
			},
			Required: []string{"description", "amount", "category"},
		},
		{
			Name:        "list_expenses",
			Description: "Lista as despesas do usuário",
			Params: map[string]llm.Param{
				"category": {Type: "string", Description: "Filtrar por categoria (opcional)"},
				"limit":    {Type: "number", Description: "Quantidade máxima de resultados"},
			},
		},
		{
			Name:        "get_expenses_summary",
			Description: "Mostra o resumo de despesas por categoria do mês atual",
		},
		{
			Name:        "add_investment",
			Description: "Registra um novo investimento",
			Params: map[string]llm.Param{
				"name":   {Type: "string", Description: "Nome do investimento (ex: Bitcoin, PETR4, Tesouro Selic)"},
				"type":   {Type: "string", Description: "Tipo do investimento", Enum: models.InvestmentTypes},
				"amount": {Type: "number", Description: "Valor investido em reais"},
			},
			Required: []string{"name", "type", "amount"},
		},
		{
			Name:        "get_investment_summary",
			Description: "Mostra o resumo dos investimentos do usuário",
		},
		{
			Name:        "set_budget",
			Description: "Define um limite de orçamento mensal para uma categoria",
			Params: map[string]llm.Param{
				"category": {Type: "string", Description: "Categoria do orçamento"},
				"limit":    {Type: "number", Description: "Limite de gastos em reais"},
			},
			Required: []string{"category", "limit"},
		},
		{
			Name:        "get_budget_status",
			Description: "Mostra o status do orçamento - quanto gastou vs limite",
		},
		{
			Name:        "add_income",
			Description: "Registra uma nova entrada/receita. Em grupos, use member_name para registrar para outro membro.",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da entrada (ex: salário dezembro, freelance site)"},
				"amount":      {Type: "number", Description: "Valor recebido em reais"},
				"source":      {Type: "string", Description: "Fonte da receita", Enum: sources},
				"member_name": {Type: "string", Description: "Nome do membro do grupo para quem registrar (opcional, só em grupos)"},
			},
			Required: []string{"description", "amount", "source"},
		},
		{
			Name:        "list_incomes",
			Description: "Lista as entradas/receitas do usuário",
			Params: map[string]llm.Param{
				"source": {Type: "string", Description: "Filtrar por fonte (opcional)"},
				"limit":  {Type: "number", Description: "Quantidade máxima de resultados"},
			},
		},
		{
			Name:        "get_income_summary",
			Description: "Mostra o resumo de entradas/receitas por fonte do mês atual",
		},
		{
			Name:        "get_balance",
			Description: "Mostra o saldo do mês (entradas - despesas)",
		},
		{
			Name:        "get_full_report",
			Description: "Gera relatório completo formatado com entradas, despesas e saldo do mês",
		},
		{
			Name:        "mark_expense_paid",
			Description: "Marca uma despesa como paga",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da despesa a marcar como paga"},
			},
			Required: []string{"description"},
		},
		{
			Name:        "mark_expense_unpaid",
			Description: "Marca uma despesa como não paga (pendente)",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da despesa a marcar como pendente"},
			},
			Required: []string{"description"},
		},
		{
			Name:        "delete_expense",
			Description: "Remove/exclui uma despesa pelo nome",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da despesa a remover"},
			},
			Required: []string{"description"},
		},
		{
			Name:        "clear_all_expenses",
			Description: "Remove/apaga TODAS as despesas de uma vez",
		},
		{
			Name:        "edit_expense",
			Description: "Edita/altera uma despesa existente",
			Params: map[string]llm.Param{
				"description":     {Type: "string", Description: "Descrição da despesa a editar (para encontrá-la)"},
				"new_description": {Type: "string", Description: "Nova descrição (opcional)"},
				"new_amount":      {Type: "number", Description: "Novo valor (opcional)"},
				"new_category":    {Type: "string", Description: "Nova categoria (opcional)", Enum: categories},
			},
			Required: []string{"description"},
		},
		{
			Name:        "delete_income",
			Description: "Remove/exclui uma entrada pelo nome",
			Params: map[string]llm.Param{
				"description": {Type: "string", Description: "Descrição da entrada a remover"},
			},
			Required: []string{"description"},
		},
		{
			Name:        "clear_all_incomes",
			Description: "Remove/apaga TODAS as entradas de uma vez",
		},
		{
			Name:        "clear_all",
			Description: "Remove/apaga TODAS as despesas E entradas de uma vez (limpa tudo)",
		},
		{
			Name:        "edit_income",
			Description: "Edita/altera uma entrada existente",
			Params: map[string]llm.Param{
				"description":     {Type: "string", Description: "Descrição da entrada a editar (para encontrá-la)"},
				"new_description": {Type: "string", Description: "Nova descrição (opcional)"},
				"new_amount":      {Type: "number", Description: "Novo valor (opcional)"},
				"new_source":      {Type: "string", Description: "Nova fonte (opcional)", Enum: sources},
			},
			Required: []string{"description"},
		},
	}

	groupOnly := []llm.ToolDef{
		{
			Name:        "get_group_report",
			Description: "Gera relatório completo do grupo com todas as despesas e entradas dos membros",
		},
		{
			Name:        "get_group_split",
			Description: "Calcula a divisão de despesas do grupo - mostra quem deve quanto para quem",
		},
		{
			Name:        "list_group_members",
			Description: "Lista todos os membros registrados no grupo",
		},
	}

	group := make([]llm.ToolDef, 0, len(personal)+len(groupOnly))
	group = append(group, personal...)
	group = append(group, groupOnly...)

	return &Definitions{personal: personal, group: group}
}

// ForScope returns the schema set for the given scope.
func (d *Definitions) ForScope(isGroup bool) []llm.ToolDef {
	if isGroup {
		return d.group
	}
	return d.personal
}
