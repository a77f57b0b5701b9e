// Package i18n holds the message table shown to users and picks a language
// from an Accept-Language header.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	KeyLoginError            = "login.error"
	KeyRegisterEmailError    = "register.emailError"
	KeyRegisterEmailInvalid  = "register.emailInvalid"
	KeyRegisterNameError     = "register.nameError"
	KeyRegisterPhoneError    = "register.phoneError"
	KeyRegisterPasswordError = "register.passwordError"
	KeyRegisterPasswordShort = "register.passwordShort"
	KeyRegisterPasswordMatch = "register.passwordMatch"
	KeyRegisterSuccess       = "register.success"
	KeyRegisterError         = "register.error"
	KeyRegisterProfileError  = "register.profileError"
	KeyLoginSuccess          = "login.success"
	KeyValidationInvalid     = "validation.invalid"
)

var defaultMessages = map[language.Tag]map[string]string{
	language.English: {
		KeyLoginError:            "Invalid email or password",
		KeyLoginSuccess:          "Login successful",
		KeyRegisterEmailError:    "Email is required",
		KeyRegisterEmailInvalid:  "Invalid email format",
		KeyRegisterNameError:     "Full name is required",
		KeyRegisterPhoneError:    "Phone number is required",
		KeyRegisterPasswordError: "Password is required",
		KeyRegisterPasswordShort: "Password must be at least 6 characters",
		KeyRegisterPasswordMatch: "Passwords do not match",
		KeyRegisterSuccess:       "Registration successful! Redirecting...",
		KeyRegisterError:         "Something went wrong. Please try again.",
		KeyRegisterProfileError:  "Your account was created but the profile could not be saved. Please try again later.",
		KeyValidationInvalid:     "Invalid value",
	},
	language.Russian: {
		KeyLoginError:            "Неверный email или пароль",
		KeyLoginSuccess:          "Вход выполнен",
		KeyRegisterEmailError:    "Введите email",
		KeyRegisterEmailInvalid:  "Неверный формат email",
		KeyRegisterNameError:     "Введите полное имя",
		KeyRegisterPhoneError:    "Введите номер телефона",
		KeyRegisterPasswordError: "Введите пароль",
		KeyRegisterPasswordShort: "Пароль должен содержать не менее 6 символов",
		KeyRegisterPasswordMatch: "Пароли не совпадают",
		KeyRegisterSuccess:       "Регистрация прошла успешно! Перенаправление...",
		KeyRegisterError:         "Что-то пошло не так. Попробуйте ещё раз.",
		KeyRegisterProfileError:  "Аккаунт создан, но профиль не удалось сохранить. Попробуйте позже.",
		KeyValidationInvalid:     "Недопустимое значение",
	},
	language.Uzbek: {
		KeyLoginError:            "Email yoki parol noto'g'ri",
		KeyLoginSuccess:          "Tizimga kirildi",
		KeyRegisterEmailError:    "Email kiriting",
		KeyRegisterEmailInvalid:  "Email formati noto'g'ri",
		KeyRegisterNameError:     "To'liq ismingizni kiriting",
		KeyRegisterPhoneError:    "Telefon raqamini kiriting",
		KeyRegisterPasswordError: "Parolni kiriting",
		KeyRegisterPasswordShort: "Parol kamida 6 ta belgidan iborat bo'lishi kerak",
		KeyRegisterPasswordMatch: "Parollar mos kelmadi",
		KeyRegisterSuccess:       "Ro'yxatdan o'tish muvaffaqiyatli! Yo'naltirilmoqda...",
		KeyRegisterError:         "Xatolik yuz berdi. Qaytadan urinib ko'ring.",
		KeyRegisterProfileError:  "Akkaunt yaratildi, lekin profil saqlanmadi. Keyinroq urinib ko'ring.",
		KeyValidationInvalid:     "Noto'g'ri qiymat",
	},
}

type Catalog struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// NewCatalog returns the built-in English, Russian and Uzbek tables. English
// is the fallback for unmatched languages and missing keys.
func NewCatalog() *Catalog {
	tags := []language.Tag{language.English, language.Russian, language.Uzbek}
	return &Catalog{
		tags:     tags,
		messages: defaultMessages,
		matcher:  language.NewMatcher(tags),
	}
}

// Printer picks the best supported language for the given Accept-Language
// values or language codes.
func (c *Catalog) Printer(accept ...string) *Printer {
	_, idx := language.MatchStrings(c.matcher, accept...)
	tag := c.tags[idx]
	return &Printer{
		tag:      tag,
		messages: c.messages[tag],
		fallback: c.messages[language.English],
	}
}

type Printer struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

func (p *Printer) Language() language.Tag {
	return p.tag
}

// T returns the message for key, or the key itself when no table has it.
func (p *Printer) T(key string) string {
	if msg, ok := p.messages[key]; ok {
		return msg
	}
	if msg, ok := p.fallback[key]; ok {
		return msg
	}
	return key
}
