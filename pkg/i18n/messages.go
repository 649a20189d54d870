package i18n

import "golang.org/x/text/language"

// Message keys. The English text doubles as the key and the fallback.
const (
	MsgForbidden           = "You do not have permission to perform this operation."
	MsgEditOrderDenied     = "You do not have permission to edit orders."
	MsgEditItemDenied      = "You do not have permission to edit order items."
	MsgForeignOrderItem    = "Cannot add an item to someone else's order."
	MsgMethodNotAllowed    = "Method not allowed."
	MsgNotFound            = "Resource not found."
	MsgValidationFailed    = "Validation failed."
	MsgAuthRequired        = "Authentication required."
	MsgInvalidCredentials  = "Invalid credentials."
	MsgSearchNameRequired  = "Parameter 'name' is required."
	MsgCountryCode         = "Country code must be 2 uppercase letters, e.g. PL."
	MsgRegionRequired      = "Region is required."
	MsgTeaNameRequired     = "Tea name is required."
	MsgTeaNameCapitalized  = "Tea name should start with an uppercase letter."
	MsgPricePositive       = "Price must be greater than 0."
	MsgStockNonNegative    = "Stock quantity cannot be negative."
	MsgQuantityPositive    = "Quantity must be greater than 0."
	MsgUnitPricePositive   = "Unit price must be greater than 0."
	MsgDeliveryDatePast    = "Delivery date cannot be in the past."
	MsgCategoryNameMissing = "Category name is required."
	MsgCategoryNameTaken   = "A category with this name already exists."
	MsgCategoryInUse       = "Category is still used by teas."
	MsgCategoryUnknown     = "Selected category does not exist."
	MsgOriginUnknown       = "Selected origin does not exist."
	MsgTeaUnknown          = "Selected tea does not exist."
	MsgOrderUnknown        = "Selected order does not exist."
	MsgUserUnknown         = "Selected user does not exist."
	MsgTeaInUse            = "Tea is referenced by order items."
	MsgTeaTypeInvalid      = "Select a valid tea type."
	MsgCaffeineInvalid     = "Select a valid caffeine level."
	MsgStatusInvalid       = "Select a valid order status."
	MsgDuplicateOrderItem  = "This tea is already on the order."
	MsgUsernameRequired    = "Username is required."
	MsgUsernameTaken       = "A user with this username already exists."
	MsgPasswordRequired    = "Password is required."
	MsgEmailInvalid        = "Enter a valid email address."
	MsgFieldRequired       = "This field is required."
	MsgFieldInvalid        = "This field is invalid."
	MsgFieldTooLong        = "Ensure this field is not too long."
	MsgDecimalPlaces       = "Ensure that there are no more than 2 decimal places."
	MsgValueTooLarge       = "Ensure this value is less than or equal to 2147483647."
	MsgRateLimited         = "Too many attempts, try again later."
	MsgInternal            = "Internal server error."
)

var polish = map[string]string{
	MsgForbidden:           "Brak uprawnień do tej operacji.",
	MsgEditOrderDenied:     "Brak uprawnień do edycji zamówień.",
	MsgEditItemDenied:      "Brak uprawnień do edycji pozycji zamówień.",
	MsgForeignOrderItem:    "Nie można dodać pozycji do cudzego zamówienia.",
	MsgMethodNotAllowed:    "Metoda niedozwolona.",
	MsgNotFound:            "Nie znaleziono.",
	MsgValidationFailed:    "Błąd walidacji.",
	MsgAuthRequired:        "Wymagane uwierzytelnienie.",
	MsgInvalidCredentials:  "Nieprawidłowe dane.",
	MsgSearchNameRequired:  "Parametr 'name' jest wymagany.",
	MsgCountryCode:         "Kod kraju musi składać się z 2 wielkich liter, np. PL.",
	MsgRegionRequired:      "Region jest wymagany.",
	MsgTeaNameRequired:     "Nazwa herbaty jest wymagana.",
	MsgTeaNameCapitalized:  "Nazwa herbaty powinna zaczynać się wielką literą.",
	MsgPricePositive:       "Cena musi być większa od 0.",
	MsgStockNonNegative:    "Stan magazynowy nie może być ujemny.",
	MsgQuantityPositive:    "Ilość musi być większa od 0.",
	MsgUnitPricePositive:   "Cena jednostkowa musi być większa od 0.",
	MsgDeliveryDatePast:    "Data dostawy nie może być z przeszłości.",
	MsgCategoryNameMissing: "Nazwa kategorii jest wymagana.",
	MsgCategoryNameTaken:   "Kategoria o tej nazwie już istnieje.",
	MsgCategoryInUse:       "Kategoria jest nadal używana przez herbaty.",
	MsgCategoryUnknown:     "Wybrana kategoria nie istnieje.",
	MsgOriginUnknown:       "Wybrane pochodzenie nie istnieje.",
	MsgTeaUnknown:          "Wybrana herbata nie istnieje.",
	MsgOrderUnknown:        "Wybrane zamówienie nie istnieje.",
	MsgUserUnknown:         "Wybrany użytkownik nie istnieje.",
	MsgTeaInUse:            "Herbata występuje w pozycjach zamówień.",
	MsgTeaTypeInvalid:      "Wybierz poprawny rodzaj herbaty.",
	MsgCaffeineInvalid:     "Wybierz poprawny poziom kofeiny.",
	MsgStatusInvalid:       "Wybierz poprawny status zamówienia.",
	MsgDuplicateOrderItem:  "Ta herbata jest już w zamówieniu.",
	MsgUsernameRequired:    "Nazwa użytkownika jest wymagana.",
	MsgUsernameTaken:       "Użytkownik o tej nazwie już istnieje.",
	MsgPasswordRequired:    "Hasło jest wymagane.",
	MsgEmailInvalid:        "Podaj poprawny adres e-mail.",
	MsgFieldRequired:       "To pole jest wymagane.",
	MsgFieldInvalid:        "Niepoprawna wartość.",
	MsgFieldTooLong:        "Wartość jest za długa.",
	MsgDecimalPlaces:       "Upewnij się, że liczba ma nie więcej niż 2 miejsca po przecinku.",
	MsgValueTooLarge:       "Upewnij się, że wartość jest mniejsza lub równa 2147483647.",
	MsgRateLimited:         "Zbyt wiele prób, spróbuj później.",
	MsgInternal:            "Wewnętrzny błąd serwera.",

	// enum labels
	"Black":    "Czarna",
	"Green":    "Zielona",
	"White":    "Biała",
	"Oolong":   "Oolong",
	"Herbal":   "Ziołowa",
	"Pu-erh":   "Puerh",
	"None":     "Brak",
	"Low":      "Niska",
	"Medium":   "Średnia",
	"High":     "Wysoka",
	"New":      "Nowe",
	"Paid":     "Opłacone",
	"Shipped":  "Wysłane",
	"Canceled": "Anulowane",

	// page chrome
	"Teas":         "Herbaty",
	"Categories":   "Kategorie",
	"Origins":      "Pochodzenie",
	"Orders":       "Zamówienia",
	"Order items":  "Pozycje zamówień",
	"Log in":       "Zaloguj",
	"Log out":      "Wyloguj",
	"Username":     "Nazwa użytkownika",
	"Password":     "Hasło",
	"Save":         "Zapisz",
	"Delete":       "Usuń",
	"Add":          "Dodaj",
	"Back":         "Wróć",
	"Name":         "Nazwa",
	"Description":  "Opis",
	"Category":     "Kategoria",
	"Origin":       "Pochodzenie",
	"Type":         "Rodzaj",
	"Caffeine":     "Kofeina",
	"Price":        "Cena",
	"Stock":        "Stan magazynowy",
	"Active":       "Aktywna",
	"Added":        "Dodano",
	"Country code": "Kod kraju",
	"Region":       "Region",
	"Farm":         "Farma",
	"Organic":      "Ekologiczna",
	"Status":       "Status",
	"Created":      "Utworzono",
	"Delivery":     "Dostawa",
	"Note":         "Notatka",
	"Customer":     "Klient",
	"Order":        "Zamówienie",
	"Tea":          "Herbata",
	"Quantity":     "Ilość",
	"Unit price":   "Cena jednostkowa",
	"Total":        "Razem",
	"Items":        "Pozycje",
	"Yes":          "Tak",
	"No":           "Nie",

	"Nothing here yet.": "Brak pozycji.",
}

var translations = map[language.Tag]map[string]string{
	language.Polish: polish,
}
