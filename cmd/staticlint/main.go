/*
Package main предоставляет расширенный статический анализатор Go-кода, объединяющий:
стандартные анализаторы golang.org/x/tools/go/analysis/passes, анализаторы
класса SA из staticcheck.io, по одному анализатору из классов S, ST и QF,
ineffassign и собственный noosexit.

Набор подобран под этот сервис: printf и shadow ловят ошибки в вызовах
zap и обработке err, lostcancel и httpresponse проверяют контексты
хранилищ и HTTP-ответы, copylock следит за мьютексами хранилищ в памяти
и в файле, testinggoroutine и tests проверяют табличные тесты.
Экспериментальные и служебные проходы (buildssa, ctrlflow, findcall,
pkgfact, usesgenerics, hostport, gofix и подобные) не включены: они
либо ничего не сообщают, либо дают шум на этом коде.

# Использование

Установка:

	go install ./cmd/staticlint

Базовый запуск:

	staticlint ./...

Анализ конкретного пакета:

	staticlint ./internal/storage

Флаги:

	-json       вывод в формате JSON
	-exclude    список проверок для исключения (через запятую)
	-fix        автоматическое исправление (где возможно)
	-tests      включать тестовые файлы
	-cpu        ограничение количества используемых CPU

# Включенные анализаторы

## Стандартные анализаторы (golang.org/x/tools/go/analysis/passes)
- appends       - проверяет правильность использования append
- asmdecl       - проверяет соответствие ассемблерных деклараций
- assign        - обнаруживает бесполезные присваивания
- atomic        - проверяет использование sync/atomic
- bools         - обнаруживает ошибки в булевых операциях
- buildtag      - проверяет теги сборки
- cgocall       - проверяет вызовы CGO
- composite     - проверяет композитные литералы
- copylock      - проверяет копирование мьютексов
- errorsas      - проверяет использование errors.As
- deepequalerrors - запрещает reflect.DeepEqual для ошибок
- fieldalignment - обнаруживает неоптимальное выравнивание структур
- httpresponse  - проверяет обработку HTTP ответов
- loopclosure   - обнаруживает проблемы с замыканиями в циклах
- lostcancel    - находит неиспользованную функцию отмены контекста
- printf        - проверяет форматные строки
- shadow        - обнаруживает затенение переменных
- structtag     - проверяет теги структур
- unusedresult  - проверяет неиспользуемые результаты вызовов

## Staticcheck
- SA*           - все проверки корректности
- первый анализатор из simple, stylecheck и quickfix

## Другие анализаторы
- ineffassign   - обнаруживает неэффективные присваивания
- noosexit      - кастомный анализатор, запрещающий os.Exit в main()

# Кастомный анализатор noosexit

Анализатор запрещает прямой вызов os.Exit в функции main пакета main.
Вызовы в других функциях пакета и в других пакетах не проверяются.

Пример неправильного кода:

	func main() {
	    os.Exit(1) // ошибка
	}

Рекомендуемая замена:

	func main() {
	    if err := run(); err != nil {
	        log.Fatal(err) // правильно
	    }
	}

	func run() error {
	    return nil
	}
*/
package main

import (
	"strings"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/atomicalign"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/cgocall"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/deepequalerrors"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/fieldalignment"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/GevorkovG/go-shortener-digest/cmd/staticlint/myanalyzer"
)

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		appends.Analyzer,
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		atomicalign.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		cgocall.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		deepequalerrors.Analyzer,
		defers.Analyzer,
		directive.Analyzer,
		errorsas.Analyzer,
		fieldalignment.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		stdmethods.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		timeformat.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unsafeptr.Analyzer,
		unusedresult.Analyzer,
	}

	for _, v := range staticcheck.Analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") {
			list = append(list, v.Analyzer)
		}
	}

	// По одному из остальных классов
	list = append(list,
		simple.Analyzers[0].Analyzer,
		stylecheck.Analyzers[0].Analyzer,
		quickfix.Analyzers[0].Analyzer,
	)

	return append(list,
		ineffassign.Analyzer,
		myanalyzer.NoOsExitAnalyzer,
	)
}

func main() {
	multichecker.Main(analyzers()...)
}
