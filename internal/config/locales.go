package config

import "git.home.luguber.info/inful/docnav/internal/nav"

// RootLang is the html language of the root locale.
const RootLang = "en-US"

// Locale is one site language. The root locale has an empty Tag and is
// served without a path prefix.
type Locale struct {
	Tag          string        `yaml:"tag"`
	Lang         string        `yaml:"lang,omitempty"`
	Title        string        `yaml:"title,omitempty"`
	Description  string        `yaml:"description,omitempty"`
	Label        string        `yaml:"label,omitempty"`
	SelectText   string        `yaml:"select_text,omitempty"`
	EditLinkText string        `yaml:"edit_link_text,omitempty"`
	NavText      string        `yaml:"nav_text,omitempty"`
	Overrides    nav.Overrides `yaml:"overrides,omitempty"`
}

// IsRoot reports whether l is the unprefixed default locale.
func (l Locale) IsRoot() bool { return l.Tag == "" }

// Info returns the site strings of the locale.
func (l Locale) Info() nav.LocaleInfo {
	return nav.LocaleInfo{
		Lang:         l.Lang,
		Title:        l.Title,
		Description:  l.Description,
		Label:        l.Label,
		SelectText:   l.SelectText,
		EditLinkText: l.EditLinkText,
		NavText:      l.NavText,
	}
}

func pages(kv ...string) nav.Overrides {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return nav.Overrides{Pages: m}
}

// DefaultLocales is the locale table written by Init.
func DefaultLocales() []Locale {
	return []Locale{
		{
			Lang: RootLang, Title: "Starship", Label: "English", SelectText: "Languages",
			Description:  "The minimal, blazing-fast, and infinitely customizable prompt for any shell!",
			EditLinkText: "Edit this page on GitHub", NavText: "Configuration",
			Overrides: pages("guide", "Guide"),
		},
		{
			Tag: "de-DE", Title: "Starship", Label: "Deutsch", SelectText: "Sprachen",
			Description:  "Minimale, super schnelle und unendlich anpassbare Prompt für jede Shell!",
			EditLinkText: "Bearbeite diese Seite auf GitHub", NavText: "Konfiguration",
			Overrides: pages("guide", "Anleitung", "installing", "Erweiterte Installation",
				"faq", "Häufig gestellte Fragen", "presets", "Konfigurations-Beispiele"),
		},
		{
			Tag: "es-ES", Title: "Starship", Label: "Español", SelectText: "Idiomas",
			Description:  "¡El prompt minimalista, ultrarápido e infinitamente personalizable para cualquier intérprete de comandos!",
			EditLinkText: "Edita esta página en GitHub", NavText: "Configuración",
			Overrides: pages("guide", "Guía", "installing", "Instalación avanzada",
				"faq", "Preguntas frecuentes", "presets", "Ajustes predeterminados"),
		},
		{
			Tag: "fr-FR", Title: "Starship", Label: "Français", SelectText: "Langues",
			Description:  "L'invite minimaliste, ultra-rapide et personnalisable à l'infini pour n'importe quel shell !",
			EditLinkText: "Éditez cette page sur GitHub", NavText: "Configuration",
			Overrides: pages("guide", "Guide", "installing", "Installation avancée"),
		},
		{
			Tag: "id-ID", Title: "Starship", Label: "Bahasa Indonesia", SelectText: "Languages",
			Description:  "Prompt yang minimal, super cepat, dan dapat disesuaikan tanpa batas untuk shell apa pun!",
			EditLinkText: "Sunting halaman ini di Github", NavText: "Konfigurasi",
			Overrides: pages("guide", "Petunjuk", "installing", "Advanced Installation",
				"faq", "Pertanyaan Umum", "presets", "Prasetel"),
		},
		{
			Tag: "it-IT", Title: "Starship", Label: "Italiano", SelectText: "Languages",
			Description:  "Il prompt minimalista, super veloce e infinitamente personalizzabile per qualsiasi shell!",
			EditLinkText: "Modifica questa pagina in Github", NavText: "Configuration",
			Overrides: pages("guide", "Guide", "installing", "Installazione Avanzata"),
		},
		{
			Tag: "ja-JP", Title: "Starship", Label: "日本語", SelectText: "言語",
			Description:  "シェル用の最小限の、非常に高速で、無限にカスタマイズ可能なプロンプトです！",
			EditLinkText: "GitHub で編集する", NavText: "設定",
			Overrides: pages("guide", "ガイド", "installing", "高度なインストール"),
		},
		{
			Tag: "pt-BR", Title: "Starship", Label: "Português do Brasil", SelectText: "Languages",
			Description:  "O prompt minimalista, extremamente rápido e infinitamente personalizável para qualquer shell!",
			EditLinkText: "Edite esta página no Github", NavText: "Configuração",
			Overrides: pages("guide", "Guia", "installing", "Instalação avançada",
				"faq", "Perguntas frequentes", "presets", "Predefinições"),
		},
		{
			Tag: "ru-RU", Title: "Starship", Label: "Русский", SelectText: "Языки",
			Description:  "Минималистичная, быстрая и бесконечно настраиваемая командная строка для любой оболочки!",
			EditLinkText: "Редактировать эту страницу на GitHub", NavText: "Настройка",
			Overrides: pages("guide", "Руководство", "installing", "Advanced Installation",
				"config", "Настройка", "advanced-config", "Расширенная Настройка",
				"faq", "Часто Задаваемые Вопросы"),
		},
		{
			Tag: "uk-UA", Title: "Starship", Label: "Українська", SelectText: "Мови",
			Description:  "Простий, супер швидкий та безмежно адаптивний командний рядок для будь-якої оболонки!",
			EditLinkText: "Редагувати цю сторінку на GitHub", NavText: "Налаштування",
			Overrides: pages("guide", "Керівництво", "installing", "Розширене встановлення",
				"config", "Налаштування", "advanced-config", "Розширені налаштування",
				"faq", "Часті питання", "presets", "Шаблони"),
		},
		{
			Tag: "vi-VN", Title: "Starship", Label: "Tiếng Việt", SelectText: "Ngôn ngữ",
			Description:  "Nhỏ gọn, cực nhanh, và khả năng tuỳ chỉnh vô hạn prompt cho bất kì shell nào!",
			EditLinkText: "Chỉnh sửa trang này trên GitHub", NavText: "Cấu hình",
			Overrides: pages("guide", "Hướng dẫn", "installing", "Cài đặt nâng cao",
				"faq", "Các hỏi thường gặp"),
		},
		{
			Tag: "zh-CN", Title: "Starship", Label: "简体中文", SelectText: "语言",
			Description:  "轻量级、反应迅速，可定制的高颜值终端！",
			EditLinkText: "在 GitHub 上修改此页", NavText: "配置",
			Overrides: pages("guide", "指南", "installing", "高级安装", "presets", "社区配置分享"),
		},
		{
			Tag: "zh-TW", Title: "Starship", Label: "繁體中文", SelectText: "語言",
			Description:  "適合任何 shell 的最小、極速、無限客製化的提示字元！",
			EditLinkText: "在 GitHub 上修改此頁面", NavText: "設定",
			Overrides: pages("guide", "指引", "installing", "進階安裝"),
		},
	}
}
