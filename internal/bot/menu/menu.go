package menu

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/scope"
)

// Etiquetas de los botones del menú. El dispatcher enruta por texto exacto.
const (
	BtnVentas        = "💰 Ventas"
	BtnPagos         = "🧾 Pagos"
	BtnAsistencias   = "📝 Asistencias"
	BtnClases        = "🎼 Programación de clases"
	BtnProfHorarios  = "🗓 Programación de profesores"
	BtnCursos        = "🎹 Cursos"
	BtnMatriculas    = "📚 Matrículas"
	BtnBeneficiarios = "🧑‍🎓 Beneficiarios"
	BtnClientes      = "👪 Clientes"
	BtnProfesores    = "👩‍🏫 Profesores"
	BtnUsuarios      = "👥 Usuarios"
	BtnAulas         = "🚪 Aulas"
	BtnRoles         = "🛡 Roles"
	BtnPerfil        = "👤 Mi perfil"
	BtnCambiarRol    = "🔄 Cambiar rol"
	BtnSalir         = "🚪 Cerrar sesión"
)

// GetRoleMenu devuelve el menú según el rol activo.
func GetRoleMenu(rol scope.Rol, variosRoles bool) tgbotapi.ReplyKeyboardMarkup {
	var filas [][]tgbotapi.KeyboardButton
	switch rol {
	case scope.Administrador:
		filas = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnVentas),
				tgbotapi.NewKeyboardButton(BtnPagos),
				tgbotapi.NewKeyboardButton(BtnAsistencias),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnClases),
				tgbotapi.NewKeyboardButton(BtnProfHorarios),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnCursos),
				tgbotapi.NewKeyboardButton(BtnMatriculas),
				tgbotapi.NewKeyboardButton(BtnAulas),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnBeneficiarios),
				tgbotapi.NewKeyboardButton(BtnClientes),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnProfesores),
				tgbotapi.NewKeyboardButton(BtnUsuarios),
				tgbotapi.NewKeyboardButton(BtnRoles),
			),
		}
	case scope.Profesor:
		filas = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnClases),
				tgbotapi.NewKeyboardButton(BtnProfHorarios),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnAsistencias),
			),
		}
	case scope.Cliente:
		filas = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnBeneficiarios),
				tgbotapi.NewKeyboardButton(BtnPagos),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnVentas),
			),
		}
	default: // beneficiario
		filas = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnClases),
				tgbotapi.NewKeyboardButton(BtnAsistencias),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(BtnPagos),
				tgbotapi.NewKeyboardButton(BtnVentas),
			),
		}
	}

	ultima := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(BtnPerfil)}
	if variosRoles {
		ultima = append(ultima, tgbotapi.NewKeyboardButton(BtnCambiarRol))
	}
	ultima = append(ultima, tgbotapi.NewKeyboardButton(BtnSalir))
	filas = append(filas, ultima)

	return tgbotapi.NewReplyKeyboard(filas...)
}
