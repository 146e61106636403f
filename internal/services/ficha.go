package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// RenderDatasheetPDF imprime a ficha técnica do produto em PDF usando um
// Chrome headless. O PDF é depois guardado no MinIO e referenciado no
// produto.
func RenderDatasheetPDF(p models.Product) ([]byte, error) {
	html := datasheetHTML(p)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout para não travar o handler do admin
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.7).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func datasheetHTML(p models.Product) string {
	unit := "unidade"
	if p.Type == models.TypeMeter {
		unit = "metro"
	}

	var colors strings.Builder
	for _, c := range p.Colors {
		colors.WriteString(fmt.Sprintf(
			`<span style="display:inline-block;margin-right:12px;">
				<span style="display:inline-block;width:14px;height:14px;border:1px solid #ccc;background:%s;"></span> %s
			</span>`, c.Hex, c.Name))
	}

	attrs := ""
	if p.Width > 0 {
		attrs += fmt.Sprintf("<tr><td>Largura</td><td>%.2f m</td></tr>", p.Width)
	}
	if p.Weight > 0 {
		attrs += fmt.Sprintf("<tr><td>Peso</td><td>%.3f kg/%s</td></tr>", p.Weight, unit)
	}
	if p.Composition != "" {
		attrs += fmt.Sprintf("<tr><td>Composição</td><td>%s</td></tr>", p.Composition)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><style>
	body { font-family: Georgia, serif; color: #1c1917; margin: 40px; }
	h1 { color: #14532d; border-bottom: 2px solid #14532d; padding-bottom: 8px; }
	table { border-collapse: collapse; width: 100%%; margin-top: 16px; }
	td { border: 1px solid #e7e5e4; padding: 8px 12px; }
	img { max-width: 100%%; max-height: 320px; object-fit: cover; margin-top: 16px; }
	footer { margin-top: 40px; font-size: 12px; color: #78716c; }
</style></head>
<body>
	<h1>%s</h1>
	<p>Categoria: %s • Venda por %s</p>
	<img src="%s" alt="%s">
	<table>
		<tr><td>Preço</td><td>R$ %.2f / %s</td></tr>
		%s
	</table>
	<p>Cores disponíveis:<br>%s</p>
	<footer>Rio Verde Tecidos & Estofados — Bacacheri, Curitiba/PR</footer>
</body>
</html>`, p.Name, p.Category, unit, p.Image, p.Name, p.Price, unit, attrs, colors.String())
}
