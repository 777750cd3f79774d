// Package transport — общий пул HTTP(S)-соединений к Azkaban.
//
// Контракт:
//
//	Get(ctx, url-with-query)               -> body
//	PostForm(ctx, url, form)               -> body
//	PostMultipart(ctx, url, body, ctype)   -> body
//
// Сетевые и TLS-ошибки возвращаются вызывающему без интерпретации, retry нет.
// Проверка сертификата включена по умолчанию; Config.Insecure отключает её
// для совместимости со стендами на самоподписанных сертификатах.
package transport
